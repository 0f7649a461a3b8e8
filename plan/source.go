package plan

import (
	"reflect"

	"tsvwriter/tags"
)

// FieldRef identifies a field whose export metadata is requested.
type FieldRef struct {
	Owner TypeID
	Name  string
	Tag   reflect.StructTag
}

// Source supplies export metadata for fields.
// The boolean result reports whether the field participates.
type Source interface {
	Attributes(f FieldRef) (tags.Attributes, bool, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(f FieldRef) (tags.Attributes, bool, error)

// Attributes implements Source.
func (fn SourceFunc) Attributes(f FieldRef) (tags.Attributes, bool, error) {
	return fn(f)
}

// TagSource reads metadata from `tsv` struct tags.
var TagSource Source = SourceFunc(func(f FieldRef) (tags.Attributes, bool, error) {
	return tags.Parse(f.Tag)
})
