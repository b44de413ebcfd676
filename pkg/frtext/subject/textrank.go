package subject

import (
	"math"
	"sort"

	"github.com/alixaxel/pagerank"

	"github.com/cognicore/frtext/pkg/frtext/model"
)

const (
	damping   = 0.85
	tolerance = 1e-6
)

// Summarize returns the n highest-ranked sentences in document order.
// Sentences are linked by the overlap of their content lemmas,
// normalized by ln|a| + ln|b| (floored at 1), and ranked with PageRank.
func Summarize(sents []model.Sentence, n int) []string {
	if n <= 0 || len(sents) == 0 {
		return nil
	}

	words := make([]map[string]bool, len(sents))
	for i, s := range sents {
		words[i] = make(map[string]bool)
		for _, l := range model.ContentLemmas(s.Tokens) {
			words[i][l] = true
		}
	}

	graph := pagerank.NewGraph()
	linked := false
	for i := range sents {
		for j := i + 1; j < len(sents); j++ {
			w := similarity(words[i], words[j])
			if w == 0 {
				continue
			}
			graph.Link(uint32(i), uint32(j), w)
			graph.Link(uint32(j), uint32(i), w)
			linked = true
		}
	}

	ranks := make([]float64, len(sents))
	if linked {
		graph.Rank(damping, tolerance, func(node uint32, rank float64) {
			ranks[node] = rank
		})
	}

	order := make([]int, len(sents))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return ranks[order[a]] > ranks[order[b]] })
	if len(order) > n {
		order = order[:n]
	}
	sort.Ints(order)

	out := make([]string, len(order))
	for i, idx := range order {
		out[i] = sents[idx].Text
	}
	return out
}

func similarity(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	overlap := 0
	for w := range a {
		if b[w] {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}
	norm := math.Log(float64(len(a))) + math.Log(float64(len(b)))
	if norm < 1 {
		norm = 1
	}
	return float64(overlap) / norm
}
