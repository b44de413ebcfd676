package frtext

import (
	"fmt"
	"strings"

	"github.com/cognicore/frtext/pkg/frtext/cluster"
	"github.com/cognicore/frtext/pkg/frtext/freq"
	"github.com/cognicore/frtext/pkg/frtext/report"
	"github.com/cognicore/frtext/pkg/frtext/stoplist"
)

// CleanReport renders a CleanResult.
func (e *Engine) CleanReport(res CleanResult) *report.Report {
	r := e.reports.Build(report.KindClean, res.Source, res)
	if res.Preview != "" {
		r.Section("📄 Premières lignes du fichier :", strings.Split(res.Preview, "\n")...)
	}
	if res.Excerpt != "" {
		r.Section("🔍 Texte original (extrait) :", res.Excerpt+" ...")
	}
	r.Section("✅ Liste finale des mots nettoyés :", fmt.Sprintf("%q", res.Tokens))
	return r
}

// AnalyzeReport renders an AnalyzeResult.
func (e *Engine) AnalyzeReport(res AnalyzeResult) *report.Report {
	r := e.reports.Build(report.KindAnalyze, strings.Join(res.Sources, ","), res)
	r.Section("🔢 Mots les plus fréquents :", entryLines(res.TopWords)...)

	r.Section("📊 Analyse TF-IDF")
	for i, terms := range res.TFIDF {
		r.Section(fmt.Sprintf("📄 Document %d :", i+1))
		for _, t := range terms {
			r.Linef("%s : %.4f", t.Token, t.Weight)
		}
	}

	r.Section("🧠 Entités nommées détectées (NER) :")
	for _, ent := range res.Entities {
		r.Linef("%s → %s", ent.Text, ent.Label)
	}
	r.Section("📍 Résumé des entités :",
		"Personnes :     "+listString(res.Summary.Persons),
		"Lieux :         "+listString(res.Summary.Locations),
		"Organisations : "+listString(res.Summary.Organizations),
	)
	return r
}

// ClassifyReport renders a ClassifyResult.
func (e *Engine) ClassifyReport(source string, res ClassifyResult) *report.Report {
	r := e.reports.Build(report.KindClassify, source, res)
	r.Section("🧠 Classification par mots-clés :", "→ Thème détecté : "+res.KeywordTheme)
	r.Section("📊 Mots dominants dans le texte (via NLP) :", entryLines(res.TopLemmas)...)
	r.Section("🔍 Classification automatique via modèle NLP :", "→ Thème NLP : "+res.ModelTheme)
	return r
}

// DiscoverReport renders a discovery result.
func (e *Engine) DiscoverReport(source string, res cluster.Result) *report.Report {
	r := e.reports.Build(report.KindDiscover, source, res)
	if res.Unknown == 0 {
		r.Section("✅ Aucun texte inconnu à traiter.")
		return r
	}
	r.Section(fmt.Sprintf("🔎 %d texte(s) non classés détectés.", res.Unknown))
	for _, c := range res.Clusters {
		r.Section("🆕 Nouveau thème détecté : "+c.Name, "Exemples de textes :")
		for _, ex := range c.Examples {
			r.Linef(" - %s ...", strings.Join(ex, " "))
		}
	}
	return r
}

// SubjectReport renders a SubjectResult.
func (e *Engine) SubjectReport(source string, res SubjectResult) *report.Report {
	r := e.reports.Build(report.KindSubject, source, res)
	r.Section("🧠 Phrase clé identifiée : " + res.KeySentence)
	r.Section("✍️ Résumé TextRank : " + strings.Join(res.Summary, " "))

	c := res.Comparison
	verdict := "⚠️ Sujet et thème ne correspondent pas totalement."
	if c.Consistent {
		verdict = "✅ Sujet et thème cohérents."
	}
	r.Section("🔍 Comparaison du thème détecté avec le sujet extrait :",
		"- Thème classé via mots-clés : "+c.KeywordTheme,
		"- Thème détecté via phrase sujet : "+c.SubjectTheme,
		verdict,
	)
	return r
}

// IngestReport renders ingested documents.
func (e *Engine) IngestReport(source string, docs []IngestedDoc) *report.Report {
	r := e.reports.Build(report.KindIngest, source, docs)
	r.Section(fmt.Sprintf("📥 %d document(s) enregistrés :", len(docs)))
	for _, d := range docs {
		r.Linef("#%d %s → %s (%d mots, %d entités)", d.ID, d.Source, d.Theme, d.Tokens, d.Entities)
	}
	return r
}

// StopwordsReport renders stop-word candidates.
func (e *Engine) StopwordsReport(cands []stoplist.Candidate) *report.Report {
	r := e.reports.Build(report.KindStopwords, "", cands)
	if len(cands) == 0 {
		r.Section("✅ Aucun mot vide à proposer.")
		return r
	}
	r.Section("🧹 Mots vides proposés :")
	for _, c := range cands {
		r.Linef("%s : %.1f%% des documents", c.Token, c.Reason.DFPercent)
	}
	return r
}

func entryLines(entries []freq.Entry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s : %d", e.Token, e.Count)
	}
	return lines
}

func listString(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}
