package stoplist

import (
	"sort"
	"strings"

	"github.com/cognicore/frtext/pkg/frtext/normalize"
)

// Manager holds the active stop-word set. Entries are accent-folded so a
// lookup on "etre" also covers "être".
type Manager struct {
	stops map[string]Reason
}

// Reason explains why a token is a stopword
type Reason struct {
	Builtin   bool    // part of the configured list
	HighDF    bool    // high document frequency in the corpus
	DFPercent float64 // document frequency, percent of documents
}

// NewManager creates a new stoplist manager
func NewManager(initialStops []string) *Manager {
	m := &Manager{stops: make(map[string]Reason, len(initialStops))}
	for _, s := range initialStops {
		m.Add(s, Reason{Builtin: true})
	}
	return m
}

// NewFrench returns a manager loaded with the French list and the
// determiner set.
func NewFrench() *Manager {
	m := NewManager(French)
	for _, s := range Determiners {
		m.Add(s, Reason{Builtin: true})
	}
	return m
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[normalize.Fold(token)]
	return ok
}

// Add adds a token to the stoplist with a reason
func (m *Manager) Add(token string, reason Reason) {
	token = normalize.Fold(strings.TrimSpace(token))
	if token == "" {
		return
	}
	m.stops[token] = reason
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, normalize.Fold(token))
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords, sorted
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Stats holds corpus statistics for candidate evaluation
type Stats struct {
	Token     string
	DF        int64
	DFPercent float64
}

// Candidate represents a candidate stopword
type Candidate struct {
	Token  string
	Reason Reason
	Score  float64 // confidence score
}

// Thresholds defines criteria for stopword identification
type Thresholds struct {
	DFPercent float64 // e.g. 60: appears in 60% of documents
	MinDocs   int64   // corpus must hold at least this many documents
}

// DefaultThresholds returns sensible default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DFPercent: 60.0,
		MinDocs:   3,
	}
}

// SuggestCandidates suggests tokens that should be stopwords: tokens
// present in more than DFPercent of documents that are not stopwords yet.
// Candidates are ordered by descending score, then token.
func (m *Manager) SuggestCandidates(stats []Stats, totalDocs int64, thresholds Thresholds) []Candidate {
	if thresholds.DFPercent <= 0 {
		thresholds.DFPercent = DefaultThresholds().DFPercent
	}
	if totalDocs < thresholds.MinDocs {
		return nil
	}

	var candidates []Candidate
	for _, s := range stats {
		if m.IsStop(s.Token) {
			continue // already a stopword
		}
		if s.DFPercent <= thresholds.DFPercent {
			continue
		}
		candidates = append(candidates, Candidate{
			Token: s.Token,
			Reason: Reason{
				HighDF:    true,
				DFPercent: s.DFPercent,
			},
			Score: s.DFPercent / 100.0,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Token < candidates[j].Token
	})
	return candidates
}
