// Package cluster discovers new themes among texts the theme table cannot
// classify: unclassified texts are vectorized with TF-IDF, grouped with
// k-means and each group is named from its dominant terms.
package cluster

import (
	"fmt"
	"log/slog"

	"github.com/cognicore/frtext/pkg/frtext/internalerr"
	"github.com/cognicore/frtext/pkg/frtext/themes"
	"github.com/cognicore/frtext/pkg/frtext/tfidf"
)

// Options tunes discovery.
type Options struct {
	Clusters      int   // upper bound on k
	Seed          int64 // k-means++ seed
	Threshold     int   // minimum theme hits to count as classified
	MaxIter       int
	Examples      int // example texts kept per cluster
	ExampleTokens int // tokens kept per example
	Logger        *slog.Logger
}

// DefaultOptions returns the discovery defaults.
func DefaultOptions() Options {
	return Options{
		Clusters:      2,
		Seed:          42,
		Threshold:     2,
		MaxIter:       100,
		Examples:      2,
		ExampleTokens: 10,
	}
}

// Cluster is a group of unclassified texts.
type Cluster struct {
	Label    int        `json:"label"`
	Name     string     `json:"name"`
	Docs     [][]string `json:"-"`
	Size     int        `json:"size"`
	Examples [][]string `json:"examples"`
}

// Result summarizes a discovery run.
type Result struct {
	Total    int       `json:"total"`
	Unknown  int       `json:"unknown"`
	Clusters []Cluster `json:"clusters"`
}

// Discover clusters the documents of docs whose theme is Unknown at
// opts.Threshold. Clusters are ordered by the first document carrying
// their label.
func Discover(docs [][]string, table *themes.Table, opts Options) (Result, error) {
	if len(docs) == 0 {
		return Result{}, fmt.Errorf("%w: discovery needs at least one text", internalerr.ErrInvalidInput)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if table == nil {
		table = themes.NewTable()
	}

	var unknown [][]string
	for _, d := range docs {
		if table.Classify(d, opts.Threshold) == themes.Unknown {
			unknown = append(unknown, d)
		}
	}
	res := Result{Total: len(docs), Unknown: len(unknown)}
	if len(unknown) == 0 {
		logger.Debug("no unclassified texts", "total", len(docs))
		return res, nil
	}

	labels, err := assign(unknown, opts)
	if err != nil {
		return Result{}, err
	}

	index := make(map[int]int)
	for i, label := range labels {
		pos, ok := index[label]
		if !ok {
			pos = len(res.Clusters)
			index[label] = pos
			res.Clusters = append(res.Clusters, Cluster{Label: label})
		}
		res.Clusters[pos].Docs = append(res.Clusters[pos].Docs, unknown[i])
	}

	for i := range res.Clusters {
		c := &res.Clusters[i]
		c.Size = len(c.Docs)
		c.Name = Name(c.Docs, table)
		for _, d := range c.Docs {
			if len(c.Examples) == opts.Examples {
				break
			}
			c.Examples = append(c.Examples, head(d, opts.ExampleTokens))
		}
		logger.Debug("cluster named", "label", c.Label, "name", c.Name, "size", c.Size)
	}
	return res, nil
}

func assign(unknown [][]string, opts Options) ([]int, error) {
	m, err := tfidf.Fit(unknown)
	if err != nil {
		return nil, err
	}
	if m.Dense() == nil {
		// no vocabulary: everything lands in one group
		return make([]int, len(unknown)), nil
	}

	k := opts.Clusters
	if k <= 0 {
		k = 1
	}
	km := KMeans{K: k, Seed: opts.Seed, MaxIter: opts.MaxIter}
	return km.Fit(m.Dense())
}

func head(tokens []string, n int) []string {
	if n > 0 && len(tokens) > n {
		tokens = tokens[:n]
	}
	out := make([]string, len(tokens))
	copy(out, tokens)
	return out
}
