// Package tsv turns slices of tagged structs into tab-separated text.
//
//	type Row struct {
//	    Name string   `tsv:"Name"`
//	    Tags []string `tsv:"Tags"`
//	}
//
//	text, err := tsv.ToText([]Row{{Name: "A", Tags: []string{"x", "y"}}})
//	// Name\tTags
//	// A\tx,y
//
// The plan for each type is built once and cached by the Writer. ToText and ToBytes
// use a process-wide default Writer; New creates a Writer with its own cache and
// options.
package tsv

import (
	"iter"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"

	"tsvwriter/cache"
	"tsvwriter/emit"
	"tsvwriter/internal/schema"
	"tsvwriter/plan"
)

// Mode selects how items that fail to render are handled.
type Mode = emit.Mode

const (
	ModeStrict     = emit.ModeStrict
	ModeBestEffort = emit.ModeBestEffort
)

// Report summarizes one emission.
type Report = emit.Report

type settings struct {
	rowDelim   string
	mode       Mode
	logger     *slog.Logger
	source     plan.Source
	schemaPath string
}

// Option configures a Writer.
type Option func(*settings)

// WithRowDelimiter sets the column separator (tab by default).
func WithRowDelimiter(delim string) Option {
	return func(s *settings) { s.rowDelim = delim }
}

// WithMode sets the per-item failure policy (ModeStrict by default).
func WithMode(mode Mode) Option {
	return func(s *settings) { s.mode = mode }
}

// WithLogger sets the logger for plan builds and skipped rows.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithSource replaces the struct tag metadata source.
func WithSource(source plan.Source) Option {
	return func(s *settings) { s.source = source }
}

// WithSchemaFile layers a YAML metadata overlay on top of the source.
func WithSchemaFile(path string) Option {
	return func(s *settings) { s.schemaPath = path }
}

// Writer renders sequences of structs. It is safe for concurrent use.
type Writer struct {
	plans   *cache.Plans
	emitter *emit.Emitter
}

// New creates a Writer with its own plan cache.
func New(opts ...Option) (*Writer, error) {
	s := settings{
		rowDelim: emit.DefaultRowDelimiter,
		logger:   slog.Default(),
		source:   plan.TagSource,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if s.schemaPath != "" {
		f, err := schema.LoadFile(s.schemaPath)
		if err != nil {
			return nil, err
		}
		s.source = f.Source(s.source)
	}

	return &Writer{
		plans: cache.New(s.source, s.logger),
		emitter: emit.New(emit.Options{
			RowDelimiter: s.rowDelim,
			Mode:         s.mode,
			Logger:       s.logger,
		}),
	}, nil
}

var defaultWriter = sync.OnceValue(func() *Writer {
	w, err := New()
	if err != nil {
		panic(err)
	}

	return w
})

// Default returns the process-wide Writer used by ToText and ToBytes.
func Default() *Writer {
	return defaultWriter()
}

// Plan returns the cached plan of T, checked against the Writer's delimiters.
func Plan[T any](w *Writer) (*plan.Node, error) {
	root, err := w.plans.Get(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	if err := w.emitter.Check(root); err != nil {
		return nil, err
	}

	return root, nil
}

// Header returns the header line for T.
func Header[T any](w *Writer) (string, error) {
	root, err := Plan[T](w)
	if err != nil {
		return "", err
	}

	return w.emitter.Header(root), nil
}

// Text renders items: a header line, then one line per item.
func Text[T any](w *Writer, items iter.Seq[T]) (string, Report, error) {
	root, err := Plan[T](w)
	if err != nil {
		return "", Report{}, err
	}

	return emit.Text(w.emitter, root, items)
}

// Bytes is Text encoded as UTF-8. Invalid byte sequences, which can come from
// []byte or string fields, are replaced with U+FFFD.
func Bytes[T any](w *Writer, items iter.Seq[T]) ([]byte, Report, error) {
	text, report, err := Text(w, items)
	if err != nil {
		return nil, report, err
	}

	return []byte(strings.ToValidUTF8(text, "\uFFFD")), report, nil
}

// ToText renders items with the default Writer.
func ToText[T any](items []T) (string, error) {
	text, _, err := Text(Default(), slices.Values(items))
	return text, err
}

// ToBytes renders items with the default Writer as UTF-8 bytes.
func ToBytes[T any](items []T) ([]byte, error) {
	b, _, err := Bytes(Default(), slices.Values(items))
	return b, err
}
