// Package subject picks the sentence that carries a text's subject, builds
// an extractive TextRank summary and checks the subject against the
// keyword theme.
package subject

import (
	"strings"

	"github.com/cognicore/frtext/pkg/frtext/model"
)

var importantPOS = map[string]bool{
	model.Noun:       true,
	model.ProperNoun: true,
	model.Verb:       true,
}

// Importance counts the lemmas of non-stop nouns, proper nouns and verbs
// over every sentence.
func Importance(sents []model.Sentence) map[string]int {
	counts := make(map[string]int)
	for _, s := range sents {
		for _, tok := range s.Tokens {
			if importantPOS[tok.POS] && !tok.IsStop {
				counts[tok.Lemma]++
			}
		}
	}
	return counts
}

// KeySentence returns the sentence whose lemmas add up to the highest
// importance. Only a strictly higher score replaces the current pick, so
// the first sentence wins ties. When no sentence scores, it returns "".
func KeySentence(sents []model.Sentence) string {
	counts := Importance(sents)

	best, bestScore := "", 0
	for _, s := range sents {
		score := 0
		for _, tok := range s.Tokens {
			score += counts[tok.Lemma]
		}
		if score > bestScore {
			best, bestScore = s.Text, score
		}
	}
	return strings.TrimSpace(best)
}
