package cluster

import (
	"strings"

	"github.com/cognicore/frtext/pkg/frtext/freq"
	"github.com/cognicore/frtext/pkg/frtext/themes"
)

// NamePrefix marks a cluster whose dominant terms belong to a known theme.
const NamePrefix = "New_"

// Name labels a cluster from its three most frequent tokens (ties: first
// seen). When one of them is a keyword of a theme, the first such theme in
// table order gives "New_<theme>"; otherwise the terms are joined with "_"
// and capitalized.
func Name(docs [][]string, table *themes.Table) string {
	counter := freq.NewCounter()
	for _, d := range docs {
		counter.Add(d...)
	}
	top := counter.MostCommon(3)
	if len(top) == 0 {
		return themes.Unknown
	}

	if table != nil {
		for _, theme := range table.Names() {
			for _, e := range top {
				if table.Contains(theme, e.Token) {
					return NamePrefix + theme
				}
			}
		}
	}

	terms := make([]string, len(top))
	for i, e := range top {
		terms[i] = e.Token
	}
	return capitalize(strings.Join(terms, "_"))
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	for i, r := range s {
		return strings.ToUpper(string(r)) + s[i+len(string(r)):]
	}
	return s
}
