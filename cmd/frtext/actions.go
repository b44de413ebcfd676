package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/cognicore/frtext/internal/corpus"
	"github.com/cognicore/frtext/internal/sample"
	"github.com/cognicore/frtext/pkg/frtext"
	"github.com/cognicore/frtext/pkg/frtext/config"
	"github.com/cognicore/frtext/pkg/frtext/ingest"
	"github.com/cognicore/frtext/pkg/frtext/internalerr"
	"github.com/cognicore/frtext/pkg/frtext/report"
	"github.com/cognicore/frtext/pkg/frtext/store"
	"github.com/cognicore/frtext/pkg/frtext/store/sqlite"
	"github.com/urfave/cli/v2"
)

// session is what every command needs: the engine, a logger and where to
// print.
type session struct {
	engine *frtext.Engine
	logger *slog.Logger
	out    io.Writer
	json   bool
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("%w: log level %q", internalerr.ErrInvalidConfig, level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func open(c *cli.Context) (*session, error) {
	logger, err := newLogger(c.String("log-level"), c.App.ErrWriter)
	if err != nil {
		return nil, err
	}

	loader := config.Loader{
		ConfigPath:   c.String("config"),
		ThemesPath:   c.String("themes"),
		StoplistPath: c.String("stoplist"),
		LemmasPath:   c.String("lemmas"),
	}
	comp, err := loader.Load()
	if err != nil {
		return nil, err
	}

	var st store.Store
	if path := c.String("db"); path != "" {
		st, err = sqlite.OpenSQLite(c.Context, path)
		if err != nil {
			return nil, err
		}
		logger.Debug("opened store", "path", path)
	}

	engine, err := frtext.New(frtext.Options{Components: comp, Store: st, Logger: logger})
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, err
	}
	return &session{
		engine: engine,
		logger: logger,
		out:    c.App.Writer,
		json:   c.Bool("json"),
	}, nil
}

func (s *session) Close() {
	if err := s.engine.Close(); err != nil {
		s.logger.Warn("closing store", "err", err)
	}
}

// emit stores the report when a database is open and prints it.
func (s *session) emit(ctx context.Context, r *report.Report) error {
	if err := s.engine.SaveReport(ctx, r); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	if s.json {
		return r.WriteJSON(s.out)
	}
	return r.WriteText(s.out)
}

// input loads path, or mon_texte.txt from the working directory, or the
// bundled sample when neither exists.
func (s *session) input(path string) (frtext.Input, error) {
	if path != "" {
		return s.engine.Load(path)
	}
	in, err := s.engine.Load(sample.Source)
	if err == nil {
		return in, nil
	}
	if !errors.Is(err, internalerr.ErrNotFound) {
		return frtext.Input{}, err
	}
	s.logger.Debug("using bundled sample", "source", sample.Source)
	return frtext.Input{Source: sample.Source, Raw: sample.Text(), Tokens: sample.Tokens()}, nil
}

func (s *session) loadCorpus(path string) ([]corpus.Item, []frtext.Input, error) {
	items, err := corpus.LoadJSONL(path, s.logger)
	if err != nil {
		return nil, nil, err
	}
	ins := make([]frtext.Input, 0, len(items))
	for _, it := range items {
		if len(it.Tokens) > 0 {
			ins = append(ins, frtext.Input{Source: it.ID, Raw: it.Text, Tokens: it.Tokens})
			continue
		}
		ins = append(ins, s.engine.Prepare(it.ID, it.Text))
	}
	s.logger.Info("loaded corpus", "path", path, "items", len(items))
	return items, ins, nil
}

func cleanAction(c *cli.Context) error {
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.Close()

	in, err := s.input(c.Args().First())
	if err != nil {
		return err
	}
	return s.emit(c.Context, s.engine.CleanReport(s.engine.Clean(in)))
}

func analyzeAction(c *cli.Context) error {
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.Close()

	primary, err := s.input(c.Args().First())
	if err != nil {
		return err
	}
	var others []frtext.Input
	for _, path := range c.StringSlice("compare") {
		in, err := s.engine.Load(path)
		if err != nil {
			return err
		}
		others = append(others, in)
	}

	res, err := s.engine.Analyze(c.Context, primary, others...)
	if err != nil {
		return err
	}
	return s.emit(c.Context, s.engine.AnalyzeReport(res))
}

func classifyAction(c *cli.Context) error {
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.Close()

	in, err := s.input(c.Args().First())
	if err != nil {
		return err
	}
	res, err := s.engine.Classify(c.Context, in)
	if err != nil {
		return err
	}
	return s.emit(c.Context, s.engine.ClassifyReport(in.Source, res))
}

func discoverAction(c *cli.Context) error {
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.Close()

	if c.Bool("from-store") {
		if c.IsSet("input") {
			return fmt.Errorf("%w: use either --input or --from-store", internalerr.ErrInvalidInput)
		}
		res, err := s.engine.DiscoverStored(c.Context)
		if err != nil {
			return err
		}
		return s.emit(c.Context, s.engine.DiscoverReport(c.String("db"), res))
	}

	var (
		source string
		ins    []frtext.Input
	)
	if path := c.String("input"); path != "" {
		_, ins, err = s.loadCorpus(path)
		if err != nil {
			return err
		}
		source = path
	} else {
		in, err := s.input("")
		if err != nil {
			return err
		}
		ins = []frtext.Input{in}
		source = in.Source
	}

	res, err := s.engine.Discover(c.Context, ins)
	if err != nil {
		return err
	}
	return s.emit(c.Context, s.engine.DiscoverReport(source, res))
}

func subjectAction(c *cli.Context) error {
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.Close()

	in, err := s.input(c.Args().First())
	if err != nil {
		return err
	}
	res, err := s.engine.Subject(c.Context, in)
	if err != nil {
		return err
	}
	return s.emit(c.Context, s.engine.SubjectReport(in.Source, res))
}

func ingestAction(c *cli.Context) error {
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.Close()

	var (
		docs   []ingest.Doc
		source string
	)
	if path := c.String("input"); path != "" {
		items, _, err := s.loadCorpus(path)
		if err != nil {
			return err
		}
		for _, it := range items {
			docs = append(docs, it.Doc())
		}
		source = path
	}
	for _, path := range c.Args().Slice() {
		raw, err := ingest.LoadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, ingest.Doc{Source: path, Title: filepath.Base(path), Text: raw})
		if source == "" {
			source = path
		}
	}
	if len(docs) == 0 {
		return fmt.Errorf("%w: nothing to ingest, give --input or files", internalerr.ErrInvalidInput)
	}

	ingested, err := s.engine.Ingest(c.Context, docs)
	if err != nil {
		return err
	}
	return s.emit(c.Context, s.engine.IngestReport(source, ingested))
}

func stopwordsAction(c *cli.Context) error {
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.Close()

	cands, err := s.engine.SuggestStopwords(c.Context, c.Float64("min-df"))
	if err != nil {
		return err
	}
	return s.emit(c.Context, s.engine.StopwordsReport(cands))
}
