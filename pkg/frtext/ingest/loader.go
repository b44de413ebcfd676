package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/cognicore/frtext/pkg/frtext/internalerr"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadFile reads a UTF-8 text file. HTML files (.html, .htm) are reduced
// to their visible text. A missing file wraps internalerr.ErrNotFound and
// bytes that are not UTF-8 wrap internalerr.ErrEncoding.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: file %q does not exist", internalerr.ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("read file %s: %w", path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not UTF-8", internalerr.ErrEncoding, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err := HTMLText(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("parse html %s: %w", path, err)
		}
		return text, nil
	}
	return string(data), nil
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"article": true, "section": true, "header": true, "footer": true,
	"blockquote": true, "title": true,
}

var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
}

// HTMLText returns the visible text of an HTML document, one line per
// block element.
func HTMLText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			b.WriteByte('\n')
		}
	}
	walk(doc)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Preview returns the first n lines of text.
func Preview(text string, n int) string {
	lines := strings.Split(text, "\n")
	if n >= 0 && len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// Excerpt returns at most n runes of text.
func Excerpt(text string, n int) string {
	if n < 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n])
}
