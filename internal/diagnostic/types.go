package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

const unknownStr = "unknown"

// Diagnostics holds all diagnostic information from a plan build.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Type identifies the struct type this relates to (if any).
	Type string
	// FieldPath identifies which field this relates to (if any).
	FieldPath string
	// Err is the underlying sentinel error, set for error diagnostics.
	Err error
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return unknownStr
	}
}

// AddError adds an error diagnostic wrapping err.
func (d *Diagnostics) AddError(code string, err error, typ, fieldPath string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:  SeverityError,
		Code:      code,
		Message:   err.Error(),
		Type:      typ,
		FieldPath: fieldPath,
		Err:       err,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typ, fieldPath string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:  SeverityWarning,
		Code:      code,
		Message:   message,
		Type:      typ,
		FieldPath: fieldPath,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typ, fieldPath string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:  SeverityInfo,
		Code:      code,
		Message:   message,
		Type:      typ,
		FieldPath: fieldPath,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Err returns the error diagnostics joined into one error, or nil.
// Each part wraps the diagnostic's Err, so errors.Is sees the sentinels.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, e.wrap())
	}

	return errors.Join(errs...)
}

func (d Diagnostic) wrap() error {
	prefix := d.prefix()
	if d.Err == nil {
		return errors.New(d.String())
	}
	if prefix == "" {
		return d.Err
	}

	return fmt.Errorf("%s: %w", prefix, d.Err)
}

func (d Diagnostic) prefix() string {
	var parts []string
	if d.Type != "" {
		parts = append(parts, "["+d.Type+"]")
	}

	if d.FieldPath != "" {
		parts = append(parts, d.FieldPath)
	}

	return strings.Join(parts, " ")
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if prefix := d.prefix(); prefix != "" {
		return prefix + ": " + msg
	}

	return msg
}
