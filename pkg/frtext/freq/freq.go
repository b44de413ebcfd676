// Package freq counts tokens.
package freq

import (
	"sort"

	"github.com/cognicore/frtext/pkg/frtext/stoplist"
)

// Entry is a token with its count.
type Entry struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// Counter counts tokens and remembers first-seen order, which breaks ties
// in MostCommon.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter returns a counter loaded with tokens.
func NewCounter(tokens ...string) *Counter {
	c := &Counter{counts: make(map[string]int)}
	c.Add(tokens...)
	return c
}

// Add counts tokens. Empty tokens are ignored.
func (c *Counter) Add(tokens ...string) {
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, ok := c.counts[tok]; !ok {
			c.order = append(c.order, tok)
		}
		c.counts[tok]++
	}
}

// Get returns the count of token.
func (c *Counter) Get(token string) int {
	return c.counts[token]
}

// Len returns the number of distinct tokens.
func (c *Counter) Len() int {
	return len(c.order)
}

// Total returns the number of counted tokens.
func (c *Counter) Total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// MostCommon returns the n most frequent tokens, highest first, ties in
// first-seen order. n <= 0 returns every token.
func (c *Counter) MostCommon(n int) []Entry {
	entries := make([]Entry, len(c.order))
	for i, tok := range c.order {
		entries[i] = Entry{Token: tok, Count: c.counts[tok]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Map returns a copy of the counts.
func (c *Counter) Map() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// DocumentFrequency aggregates in how many documents each token appears.
type DocumentFrequency struct {
	totalDocs int64
	df        map[string]int64
}

// NewDocumentFrequency creates an empty aggregator.
func NewDocumentFrequency() *DocumentFrequency {
	return &DocumentFrequency{df: make(map[string]int64)}
}

// Process consumes one document's tokens.
func (d *DocumentFrequency) Process(tokens []string) {
	d.totalDocs++
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		d.df[tok]++
	}
}

// TotalDocs returns the number of processed documents.
func (d *DocumentFrequency) TotalDocs() int64 {
	return d.totalDocs
}

// DF returns the document frequency of token.
func (d *DocumentFrequency) DF(token string) int64 {
	return d.df[token]
}

// StopwordStats converts the aggregate into stoplist statistics, sorted by
// token.
func (d *DocumentFrequency) StopwordStats() []stoplist.Stats {
	out := make([]stoplist.Stats, 0, len(d.df))
	for tok, df := range d.df {
		pct := 0.0
		if d.totalDocs > 0 {
			pct = float64(df) / float64(d.totalDocs) * 100
		}
		out = append(out, stoplist.Stats{Token: tok, DF: df, DFPercent: pct})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}
