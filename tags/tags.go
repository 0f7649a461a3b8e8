// Package tags parses the struct tags that mark fields for tabular export.
//
// A field takes part in the export when it carries a `tsv` tag:
//
//	type Order struct {
//	    ID     int64       `tsv:"Order ID"`
//	    Items  []OrderItem `tsv:",inline" tsvdelim:";"`
//	    Note   string      `tsv:"-"`
//	    secret string
//	}
//
// The first element of the `tsv` tag is the column header (the Go field name when
// empty). The only option is `inline`, which hides the field's own column and keeps the
// columns of its nested fields. The collection delimiter lives in its own `tsvdelim`
// key so that any string, commas included, can be used.
//
// An untagged embedded struct has its tagged fields promoted into the owner. An
// embedded struct tagged `tsv:"-"` is left out entirely.
//
// Maps are not collections: a map-valued field is a single column rendered through
// fmt, which prints keys in sorted order.
package tags

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

const (
	// Key is the struct tag key that marks a field for export.
	Key = "tsv"
	// DelimiterKey is the struct tag key holding the collection delimiter.
	DelimiterKey = "tsvdelim"

	optInline = "inline"
	skip      = "-"
)

// ErrUnknownOption is returned for tag options other than `inline`.
var ErrUnknownOption = errors.New("unknown tsv tag option")

// Attributes is the export metadata of a single field.
type Attributes struct {
	// Header is the column header. Empty means "use the field name".
	Header string
	// Delimiter joins the elements of a collection-valued field. Empty means default.
	Delimiter string
	// Inline hides the field's own column, keeping only its children.
	Inline bool
	// Excluded marks a field left out on purpose, as opposed to one that is untagged.
	Excluded bool
}

// HeaderOr returns the header, or name when no header was declared.
func (a Attributes) HeaderOr(name string) string {
	if a.Header == "" {
		return name
	}

	return a.Header
}

// Parse reads export metadata from a struct tag.
// The boolean result reports whether the field participates at all; a `tsv:"-"`
// field does not, and has Excluded set.
func Parse(tag reflect.StructTag) (Attributes, bool, error) {
	value, ok := tag.Lookup(Key)
	if !ok {
		return Attributes{}, false, nil
	}
	if value == skip {
		return Attributes{Excluded: true}, false, nil
	}

	header, rest, _ := strings.Cut(value, ",")

	attrs := Attributes{
		Header:    header,
		Delimiter: tag.Get(DelimiterKey),
	}

	for rest != "" {
		var opt string
		opt, rest, _ = strings.Cut(rest, ",")

		switch strings.TrimSpace(opt) {
		case optInline:
			attrs.Inline = true
		case "":
		default:
			return Attributes{}, false, fmt.Errorf("%w: %q", ErrUnknownOption, opt)
		}
	}

	return attrs, true, nil
}
