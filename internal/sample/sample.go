// Package sample holds the bundled example: a short biography and the
// token list it was reduced to.
package sample

import (
	_ "embed"
	"strings"
)

// Source names the bundled sample in reports.
const Source = "mon_texte.txt"

//go:embed data/mon_texte.txt
var text string

//go:embed data/tokens.txt
var tokens string

// Text returns the raw biography.
func Text() string { return text }

// Tokens returns the cleaned, lemmatized token list of the biography.
func Tokens() []string { return strings.Fields(tokens) }
