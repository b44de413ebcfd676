package subject

import (
	"github.com/cognicore/frtext/pkg/frtext/model"
	"github.com/cognicore/frtext/pkg/frtext/themes"
)

// Comparison puts the keyword theme of a text next to the theme of its
// key sentence.
type Comparison struct {
	KeywordTheme string `json:"keyword_theme"`
	SubjectTheme string `json:"subject_theme"`
	Consistent   bool   `json:"consistent"`
}

// Compare classifies the non-stop lemmas of the key sentence with
// threshold 1 and compares the result with keywordTheme.
func Compare(table *themes.Table, keywordTheme string, keyTokens []model.Token) Comparison {
	var lemmas []string
	for _, t := range keyTokens {
		if !t.IsStop {
			lemmas = append(lemmas, t.Lemma)
		}
	}
	subjectTheme := table.Classify(lemmas, 1)
	return Comparison{
		KeywordTheme: keywordTheme,
		SubjectTheme: subjectTheme,
		Consistent:   subjectTheme == keywordTheme,
	}
}
