// Package emit renders values into delimited text by walking a plan.
//
// The output is a header line followed by one line per item. Columns are joined with
// the row delimiter, collection elements with the collection delimiter of their
// field, and lines with a single newline. There is no trailing separator, no trailing
// newline and no quoting: values are inserted through their default text form.
package emit

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"reflect"
	"strings"

	"tsvwriter/plan"
)

// DefaultRowDelimiter separates columns within a line.
const DefaultRowDelimiter = "\t"

const newline = "\n"

var (
	ErrDelimiterClash = errors.New("delimiter clash")
	ErrFieldAccess    = errors.New("field access failed")
	ErrRender         = errors.New("value rendering failed")
	ErrInvalidMode    = errors.New("invalid mode")
)

// Options configures an Emitter.
type Options struct {
	// RowDelimiter separates columns. Defaults to DefaultRowDelimiter.
	RowDelimiter string
	// Mode selects the per-item failure policy. Defaults to ModeStrict.
	Mode Mode
	// Logger receives skipped-row warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// Emitter renders plans. It holds no per-call state and is safe for concurrent use.
type Emitter struct {
	rowDelim string
	mode     Mode
	logger   *slog.Logger
}

// ItemError reports an item that could not be rendered.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// Report summarizes one emission.
type Report struct {
	// Rows is the number of data rows written.
	Rows int
	// Skipped is the number of items dropped in ModeBestEffort.
	Skipped int
	// Failures holds one *ItemError per skipped item.
	Failures []error
}

// New creates an Emitter.
func New(opts Options) *Emitter {
	e := &Emitter{
		rowDelim: opts.RowDelimiter,
		mode:     opts.Mode,
		logger:   opts.Logger,
	}

	if e.rowDelim == "" {
		e.rowDelim = DefaultRowDelimiter
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// RowDelimiter returns the column separator in use.
func (e *Emitter) RowDelimiter() string {
	return e.rowDelim
}

// Mode returns the per-item failure policy in use.
func (e *Emitter) Mode() Mode {
	return e.mode
}

// Check verifies that no collection delimiter of root contains, or is contained in,
// the row delimiter, and that no delimiter contains the line separator.
func (e *Emitter) Check(root *plan.Node) error {
	var errs []error

	if strings.Contains(e.rowDelim, newline) {
		errs = append(errs, fmt.Errorf("%w: row delimiter contains a newline", ErrDelimiterClash))
	}

	root.Walk(func(n *plan.Node) bool {
		if n.Kind != plan.KindCollection {
			return true
		}

		switch {
		case n.Delimiter == "":
			errs = append(errs, fmt.Errorf("%w: field %s has an empty delimiter",
				ErrDelimiterClash, n.Name))
		case strings.Contains(n.Delimiter, e.rowDelim) || strings.Contains(e.rowDelim, n.Delimiter):
			errs = append(errs, fmt.Errorf("%w: field %s delimiter %q overlaps the row delimiter %q",
				ErrDelimiterClash, n.Name, n.Delimiter, e.rowDelim))
		case strings.Contains(n.Delimiter, newline):
			errs = append(errs, fmt.Errorf("%w: field %s delimiter contains a newline",
				ErrDelimiterClash, n.Name))
		}

		return true
	})

	return errors.Join(errs...)
}

// Header renders the header line of root.
func (e *Emitter) Header(root *plan.Node) string {
	return strings.Join(root.Headers(), e.rowDelim)
}

// Row renders one item. A rendering panic (e.g. from a String method) is returned
// as an error wrapping ErrRender.
func (e *Emitter) Row(root *plan.Node, item reflect.Value) (row string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	cols, err := render(root, item)
	if err != nil {
		return "", err
	}

	return strings.Join(cols, e.rowDelim), nil
}

// Text renders the header and one line per item.
func Text[T any](e *Emitter, root *plan.Node, items iter.Seq[T]) (string, Report, error) {
	var (
		sb     strings.Builder
		report Report
	)

	sb.WriteString(e.Header(root))

	i := -1
	for item := range items {
		i++

		row, err := e.Row(root, reflect.ValueOf(&item).Elem())
		if err != nil {
			itemErr := &ItemError{Index: i, Err: err}
			if e.mode == ModeStrict {
				return "", report, itemErr
			}

			report.Skipped++
			report.Failures = append(report.Failures, itemErr)
			e.logger.Warn("skipping row", "index", i, "error", err)

			continue
		}

		sb.WriteString(newline)
		sb.WriteString(row)
		report.Rows++
	}

	return sb.String(), report, nil
}

// ParseMode parses "strict" or "best-effort" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return ModeStrict, nil
	case "best-effort", "besteffort":
		return ModeBestEffort, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected strict or best-effort)", ErrInvalidMode, s)
	}
}
