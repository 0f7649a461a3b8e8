// Package schema loads a declarative YAML overlay of export metadata.
//
// The overlay lets callers export types they cannot annotate, or change headers
// without touching struct tags:
//
//	version: "1"
//	types:
//	  - type: tsvwriter/store.Order
//	    fields:
//	      ID: {header: "Order #"}
//	      OrderedAt: {header: "Ordered"}
//	      Notes: {delimiter: "|"}
//	      Status: {skip: true}
//
// A field listed in the overlay participates even without a `tsv` tag; attributes
// left empty keep the value from the tag. Fields not listed fall back to the tags.
package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tsvwriter/plan"
	"tsvwriter/tags"
)

// ErrInvalidSchema is returned when an overlay document fails validation.
var ErrInvalidSchema = errors.New("invalid schema")

// File is a parsed overlay document.
type File struct {
	Version string       `yaml:"version"`
	Types   []TypeSchema `yaml:"types"`

	index map[string]map[string]FieldSchema
}

// TypeSchema lists field overrides of one type, identified as "pkgpath.Name".
type TypeSchema struct {
	Type   string                 `yaml:"type"`
	Fields map[string]FieldSchema `yaml:"fields"`
}

// FieldSchema overrides the metadata of one field.
type FieldSchema struct {
	Header    string `yaml:"header,omitempty"`
	Delimiter string `yaml:"delimiter,omitempty"`
	Inline    *bool  `yaml:"inline,omitempty"`
	Skip      bool   `yaml:"skip,omitempty"`
}

// LoadFile loads and parses an overlay file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses and validates an overlay document.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	if f.Version == "" {
		f.Version = "1"
	}

	if err := f.buildIndex(); err != nil {
		return nil, err
	}

	return &f, nil
}

func (f *File) buildIndex() error {
	f.index = make(map[string]map[string]FieldSchema, len(f.Types))

	for i, ts := range f.Types {
		if ts.Type == "" {
			return fmt.Errorf("%w: types[%d]: missing type", ErrInvalidSchema, i)
		}
		if _, dup := f.index[ts.Type]; dup {
			return fmt.Errorf("%w: type %s listed twice", ErrInvalidSchema, ts.Type)
		}

		for name, fs := range ts.Fields {
			if fs.Skip && (fs.Header != "" || fs.Delimiter != "" || fs.Inline != nil) {
				return fmt.Errorf("%w: %s.%s: skip cannot be combined with other attributes",
					ErrInvalidSchema, ts.Type, name)
			}
		}

		f.index[ts.Type] = ts.Fields
	}

	return nil
}

// Lookup returns the override for a field, if any.
func (f *File) Lookup(owner plan.TypeID, field string) (FieldSchema, bool) {
	fields, ok := f.index[owner.String()]
	if !ok {
		return FieldSchema{}, false
	}

	fs, ok := fields[field]

	return fs, ok
}

// Source returns a plan.Source applying the overlay on top of fallback
// (plan.TagSource when nil).
func (f *File) Source(fallback plan.Source) plan.Source {
	if fallback == nil {
		fallback = plan.TagSource
	}

	return plan.SourceFunc(func(ref plan.FieldRef) (tags.Attributes, bool, error) {
		attrs, ok, err := fallback.Attributes(ref)
		if err != nil {
			return tags.Attributes{}, false, err
		}

		fs, found := f.Lookup(ref.Owner, ref.Name)
		if !found {
			return attrs, ok, nil
		}
		if fs.Skip {
			return tags.Attributes{Excluded: true}, false, nil
		}

		attrs.Excluded = false

		if fs.Header != "" {
			attrs.Header = fs.Header
		}
		if fs.Delimiter != "" {
			attrs.Delimiter = fs.Delimiter
		}
		if fs.Inline != nil {
			attrs.Inline = *fs.Inline
		}

		return attrs, true, nil
	})
}
