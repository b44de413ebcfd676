// Package tfidf weights cleaned token documents with TF-IDF.
//
// Raw term counts come from the james-bowman/nlp count vectoriser. The
// inverse document frequency is the smoothed form
//
//	idf(t) = ln((1+n) / (1+df(t))) + 1
//
// so a term present in every document keeps a non-zero weight, and each
// document row is L2-normalized.
package tfidf

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/frtext/pkg/frtext/internalerr"
)

// Term is a weighted vocabulary entry.
type Term struct {
	Token  string  `json:"token"`
	Weight float64 `json:"weight"`
}

// Matrix holds the TF-IDF weights of a document set.
type Matrix struct {
	terms   []string   // column index → token
	weights *mat.Dense // documents × terms; nil when the vocabulary is empty
	docs    int
}

// Fit vectorizes docs. Each document is a cleaned token sequence.
func Fit(docs [][]string) (*Matrix, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents to vectorize", internalerr.ErrInvalidInput)
	}

	corpus := make([]string, len(docs))
	empty := true
	for i, d := range docs {
		corpus[i] = strings.Join(d, " ")
		if len(d) > 0 {
			empty = false
		}
	}
	m := &Matrix{docs: len(docs)}
	if empty {
		return m, nil
	}

	vectoriser := nlp.NewCountVectoriser()
	counts, err := vectoriser.FitTransform(corpus...)
	if err != nil {
		return nil, fmt.Errorf("count terms: %w", err)
	}

	m.terms = make([]string, len(vectoriser.Vocabulary))
	for tok, idx := range vectoriser.Vocabulary {
		m.terms[idx] = tok
	}
	if len(m.terms) == 0 {
		return m, nil
	}

	// counts is terms × documents
	nTerms, nDocs := counts.Dims()
	df := make([]float64, nTerms)
	for t := 0; t < nTerms; t++ {
		for d := 0; d < nDocs; d++ {
			if counts.At(t, d) > 0 {
				df[t]++
			}
		}
	}

	weights := mat.NewDense(nDocs, nTerms, nil)
	n := float64(nDocs)
	for d := 0; d < nDocs; d++ {
		var norm float64
		for t := 0; t < nTerms; t++ {
			tf := counts.At(t, d)
			if tf == 0 {
				continue
			}
			w := tf * (math.Log((1+n)/(1+df[t])) + 1)
			weights.Set(d, t, w)
			norm += w * w
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for t := 0; t < nTerms; t++ {
			weights.Set(d, t, weights.At(d, t)/norm)
		}
	}
	m.weights = weights
	return m, nil
}

// Docs returns the number of documents.
func (m *Matrix) Docs() int { return m.docs }

// Terms returns the vocabulary in column order.
func (m *Matrix) Terms() []string {
	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}

// Dense returns the documents × terms weight matrix, or nil when no
// document has any token.
func (m *Matrix) Dense() *mat.Dense { return m.weights }

// Weight returns the weight of token in document doc.
func (m *Matrix) Weight(doc int, token string) float64 {
	if m.weights == nil || doc < 0 || doc >= m.docs {
		return 0
	}
	for i, t := range m.terms {
		if t == token {
			return m.weights.At(doc, i)
		}
	}
	return 0
}

// Top returns the n highest-weighted terms of document doc. Equal
// weights keep vocabulary order. n <= 0 returns every non-zero term.
func (m *Matrix) Top(doc, n int) []Term {
	if m.weights == nil || doc < 0 || doc >= m.docs {
		return nil
	}
	row := m.weights.RawRowView(doc)
	var terms []Term
	for i, w := range row {
		if w > 0 {
			terms = append(terms, Term{Token: m.terms[i], Weight: w})
		}
	}
	sort.SliceStable(terms, func(i, j int) bool { return terms[i].Weight > terms[j].Weight })
	if n > 0 && len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
