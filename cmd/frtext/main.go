// Command frtext runs the French text analytics reports: cleaning,
// frequency/TF-IDF/entities, theme classification, discovery of new
// themes and subject extraction.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "frtext",
		Usage:     "French text analytics: cleaning, themes, entities and subjects",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML configuration file (defaults to the embedded one)",
				EnvVars: []string{"FRTEXT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "themes",
				Usage:   "YAML theme table replacing the configured one",
				EnvVars: []string{"FRTEXT_THEMES"},
			},
			&cli.StringFlag{
				Name:    "stoplist",
				Usage:   "YAML stop-word list",
				EnvVars: []string{"FRTEXT_STOPLIST"},
			},
			&cli.StringFlag{
				Name:    "lemmas",
				Usage:   "YAML lemma dictionary",
				EnvVars: []string{"FRTEXT_LEMMAS"},
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "SQLite database for documents and reports",
				EnvVars: []string{"FRTEXT_DB"},
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print reports as JSON",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"FRTEXT_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "clean",
				Usage:     "Show the first lines of a text and its cleaned tokens",
				ArgsUsage: "[file]",
				Action:    cleanAction,
			},
			{
				Name:      "analyze",
				Usage:     "Word frequencies, TF-IDF and named entities",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "compare",
						Usage: "additional text files for TF-IDF (repeatable)",
					},
				},
				Action: analyzeAction,
			},
			{
				Name:      "classify",
				Usage:     "Keyword and model theme classification",
				ArgsUsage: "[file]",
				Action:    classifyAction,
			},
			{
				Name:  "discover",
				Usage: "Cluster unclassified texts and name new themes",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "input",
						Usage: "JSONL corpus, one text per line",
					},
					&cli.BoolFlag{
						Name:  "from-store",
						Usage: "cluster the documents stored in --db",
					},
				},
				Action: discoverAction,
			},
			{
				Name:      "subject",
				Usage:     "Key sentence, summary and theme coherence",
				ArgsUsage: "[file]",
				Action:    subjectAction,
			},
			{
				Name:      "ingest",
				Usage:     "Clean, classify and store texts (requires --db)",
				ArgsUsage: "[file...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "input",
						Usage: "JSONL corpus, one text per line",
					},
				},
				Action: ingestAction,
			},
			{
				Name:  "stopwords",
				Usage: "Suggest stop-words from stored documents (requires --db)",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "min-df",
						Usage: "minimum document frequency in percent (0 uses the configured value)",
					},
				},
				Action: stopwordsAction,
			},
		},
	}
}
