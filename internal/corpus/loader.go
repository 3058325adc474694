// Package corpus loads the knowledge documents (classification cases, decision
// collections and the explanatory-notes reference) into memory once at startup.
package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hs-advisor/internal/schemas"
	"github.com/jonathan/hs-advisor/internal/types"
)

// defaultConcurrency bounds parallel file reads
const defaultConcurrency = 4

// Source is one loaded corpus partition
type Source struct {
	Name    string
	Kind    types.SourceKind
	Records []*types.Record
}

// Corpus holds every loaded source in load order. It is read-only after Load.
type Corpus struct {
	Sources []Source
}

// Source returns the named source
func (c *Corpus) Source(name string) (*Source, bool) {
	for i := range c.Sources {
		if c.Sources[i].Name == name {
			return &c.Sources[i], true
		}
	}
	return nil, false
}

// Len returns the total number of records
func (c *Corpus) Len() int {
	n := 0
	for _, s := range c.Sources {
		n += len(s.Records)
	}
	return n
}

// Knowledge bundles everything read from a knowledge directory
type Knowledge struct {
	Corpus       *Corpus
	Reference    []types.ExplanationEntry
	GeneralRules []types.GeneralRule
}

// Loader reads knowledge documents from disk
type Loader struct {
	logger      *slog.Logger
	concurrency int
}

// Option configures a Loader
type Option func(*Loader)

// WithLogger sets the logger used for load warnings.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// WithConcurrency sets how many files are read in parallel
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// NewLoader creates a Loader
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		logger:      slog.Default(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadKnowledge loads the corpus and both reference documents of a layout
func (l *Loader) LoadKnowledge(ctx context.Context, layout Layout) (*Knowledge, error) {
	corpus, err := l.Load(ctx, layout.Sources())
	if err != nil {
		return nil, err
	}

	reference, err := l.LoadReference(layout.ReferencePath())
	if err != nil {
		return nil, err
	}

	rules, err := l.LoadGeneralRules(layout.GeneralRulesPath())
	if err != nil {
		return nil, err
	}

	return &Knowledge{Corpus: corpus, Reference: reference, GeneralRules: rules}, nil
}

type outcome struct {
	records []*types.Record
	missing bool
	err     error
}

// Load reads every source. A missing file is logged and left out of the
// corpus; any other failure aborts the load, and all malformed sources are
// reported together.
func (l *Loader) Load(ctx context.Context, specs []SourceSpec) (*Corpus, error) {
	outcomes := make([]outcome, len(specs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, spec := range specs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = l.loadSource(spec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	corpus := &Corpus{Sources: make([]Source, 0, len(specs))}
	var result *multierror.Error
	for i, spec := range specs {
		o := outcomes[i]
		switch {
		case o.missing:
			l.logger.Warn("knowledge file not found, skipping source",
				"source", spec.Name, "path", spec.Path)
		case o.err != nil:
			result = multierror.Append(result, o.err)
		default:
			corpus.Sources = append(corpus.Sources, Source{Name: spec.Name, Kind: spec.Kind, Records: o.records})
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	l.logger.Debug("corpus loaded", "sources", len(corpus.Sources), "records", corpus.Len())
	return corpus, nil
}

func (l *Loader) loadSource(spec SourceSpec) outcome {
	data, err := readDocument(spec.Name, spec.Path, schemas.Records)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return outcome{missing: true}
		}
		return outcome{err: err}
	}

	var docs []map[string]any
	if err := decode(data, &docs); err != nil {
		return outcome{err: &MalformedSourceError{Source: spec.Name, Path: spec.Path, Cause: err}}
	}

	records := make([]*types.Record, len(docs))
	for i, fields := range docs {
		if fields == nil {
			fields = map[string]any{}
		}
		records[i] = &types.Record{Source: spec.Name, Kind: spec.Kind, Seq: i, Fields: fields}
	}
	return outcome{records: records}
}

// LoadReference reads the explanatory notes reference. A missing file yields
// an empty reference, so every lookup falls back to the placeholders.
func (l *Loader) LoadReference(path string) ([]types.ExplanationEntry, error) {
	var entries []types.ExplanationEntry
	found, err := l.loadReferenceDocument(path, schemas.Explanations, &entries)
	if err != nil || !found {
		return nil, err
	}
	return entries, nil
}

// LoadGeneralRules reads the general-rules document. A missing file yields no rules.
func (l *Loader) LoadGeneralRules(path string) ([]types.GeneralRule, error) {
	var rules []types.GeneralRule
	found, err := l.loadReferenceDocument(path, schemas.GeneralRules, &rules)
	if err != nil || !found {
		return nil, err
	}
	return rules, nil
}

func (l *Loader) loadReferenceDocument(path string, schema schemas.Name, out any) (bool, error) {
	data, err := readDocument(path, path, schema)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("reference file not found", "path", path)
			return false, nil
		}
		return false, err
	}
	if err := decode(data, out); err != nil {
		return false, &MalformedSourceError{Source: path, Path: path, Cause: err}
	}
	return true, nil
}

// readDocument reads a file and checks it is valid JSON matching the schema.
// A missing file is returned unwrapped as fs.ErrNotExist.
func readDocument(source, path string, schema schemas.Name) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fs.ErrNotExist
		}
		return nil, &ReadError{Path: path, Cause: err}
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !json.Valid(data) {
		var probe any
		cause := decode(data, &probe)
		return nil, &MalformedSourceError{Source: source, Path: path, Cause: cause}
	}

	if err := schemas.Validate(schema, data); err != nil {
		return nil, &MalformedSourceError{Source: source, Path: path, Cause: err}
	}
	return data, nil
}

func decode(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}
