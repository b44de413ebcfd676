package themes

import "github.com/cognicore/frtext/pkg/frtext/normalize"

// ThemeScore is the keyword hit count of one theme.
type ThemeScore struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Scores holds one entry per theme, in table order.
type Scores []ThemeScore

// Score counts keyword hits per theme. Every occurrence counts, and a
// token listed by several themes scores each of them.
func (t *Table) Score(tokens []string) Scores {
	scores := make(Scores, len(t.order))
	for i, name := range t.order {
		scores[i].Name = name
	}
	for _, tok := range tokens {
		tok = normalize.Fold(tok)
		for i, name := range t.order {
			if _, ok := t.sets[name][tok]; ok {
				scores[i].Count++
			}
		}
	}
	return scores
}

// Dominant returns the highest score; the earliest theme wins ties. The
// zero ThemeScore is returned for an empty table.
func (s Scores) Dominant() ThemeScore {
	var best ThemeScore
	for i, sc := range s {
		if i == 0 || sc.Count > best.Count {
			best = sc
		}
	}
	return best
}

// Count returns the score of a theme, 0 if absent.
func (s Scores) Count(name string) int {
	for _, sc := range s {
		if sc.Name == name {
			return sc.Count
		}
	}
	return 0
}

// Total returns the sum of all hits.
func (s Scores) Total() int {
	n := 0
	for _, sc := range s {
		n += sc.Count
	}
	return n
}

// Label returns the dominant theme name, or Unknown when its count is
// below threshold. Thresholds below 1 are treated as 1.
func (s Scores) Label(threshold int) string {
	if threshold < 1 {
		threshold = 1
	}
	best := s.Dominant()
	if best.Name == "" || best.Count < threshold {
		return Unknown
	}
	return best.Name
}

// Classify scores tokens and returns the dominant theme or Unknown.
func (t *Table) Classify(tokens []string, threshold int) string {
	return t.Score(tokens).Label(threshold)
}
