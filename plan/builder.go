package plan

import (
	"errors"
	"fmt"
	"slices"

	"tsvwriter/internal/diagnostic"
	"tsvwriter/tags"
)

var (
	ErrNotStruct        = errors.New("type is not a struct")
	ErrNestedCollection = errors.New("collection of collections is not supported")
	ErrCyclicType       = errors.New("type contains itself")
	ErrUnsupportedKind  = errors.New("field type cannot be rendered")
	ErrInlineScalar     = errors.New("inline field has no exported fields")
	ErrUnexportedField  = errors.New("unexported field cannot be exported")
	ErrMetadata         = errors.New("invalid field metadata")
	ErrNoFields         = errors.New("type has no exported fields")
)

// Diagnostic codes.
const (
	CodeNotStruct        = "not-struct"
	CodeNestedCollection = "nested-collection"
	CodeCyclicType       = "cyclic-type"
	CodeUnsupportedKind  = "unsupported-kind"
	CodeInlineScalar     = "inline-scalar"
	CodeUnexportedField  = "unexported-field"
	CodeMetadata         = "metadata"
	CodeUnusedDelimiter  = "unused-delimiter"
	CodeSkippedEmbedded  = "skipped-embedded"
	CodeNoFields         = "no-fields"
)

// Builder discovers participating fields and produces plan trees.
// A Builder is not safe for concurrent use.
type Builder struct {
	source Source
	diags  diagnostic.Diagnostics
	root   string
	active map[any]bool
}

// NewBuilder creates a Builder reading metadata from source (TagSource when nil).
func NewBuilder(source Source) *Builder {
	if source == nil {
		source = TagSource
	}

	return &Builder{source: source}
}

// Build returns the plan for a struct (or pointer to struct) descriptor using the
// default tag source.
func Build(d Descriptor) (*Node, error) {
	return NewBuilder(nil).Build(d)
}

// Diagnostics returns everything reported by the last Build call.
func (b *Builder) Diagnostics() diagnostic.Diagnostics {
	return b.diags
}

// Build returns the root node for d. Every configuration problem found in the
// type is reported; the returned error joins all of them.
func (b *Builder) Build(d Descriptor) (*Node, error) {
	b.diags = diagnostic.Diagnostics{}
	b.root = d.ID().String()
	b.active = make(map[any]bool)

	path := newFieldPath(d.ID().Name)
	if d.Shape() != ShapeStruct {
		b.fail(CodeNotStruct, fmt.Errorf("%w: %s", ErrNotStruct, d), path)
		return nil, b.diags.Err()
	}

	root := &Node{
		Kind:   KindGroup,
		Inline: true,
		Type:   d.String(),
	}
	root.Children = b.fields(d, path)
	if !b.diags.HasErrors() && len(root.Children) == 0 {
		b.fail(CodeNoFields, fmt.Errorf("%w: %s", ErrNoFields, d), path)
	}

	if b.diags.HasErrors() {
		return nil, b.diags.Err()
	}

	return root, nil
}

// fields returns the participating fields of a struct descriptor.
func (b *Builder) fields(d Descriptor, path fieldPath) []*Node {
	key := d.Identity()
	if b.active[key] {
		b.fail(CodeCyclicType, fmt.Errorf("%w: %s", ErrCyclicType, d.ID()), path)
		return nil
	}

	b.active[key] = true
	defer delete(b.active, key)

	return b.collect(d, nil, path, nil)
}

// collect appends the nodes for d's fields, promoting untagged embedded structs.
func (b *Builder) collect(d Descriptor, prefix []int, path fieldPath, out []*Node) []*Node {
	for i := range d.NumField() {
		f := d.Field(i)
		index := append(slices.Clone(prefix), f.Index)
		fpath := path.Field(f.Name)

		attrs, ok, err := b.source.Attributes(FieldRef{Owner: d.ID(), Name: f.Name, Tag: f.Tag})
		if err != nil {
			b.fail(CodeMetadata, fmt.Errorf("%w: %w", ErrMetadata, err), fpath)
			continue
		}

		if !ok {
			if f.Embedded && !attrs.Excluded && f.Type.Shape() == ShapeStruct {
				out = b.promote(f, index, path, out)
			}
			continue
		}

		if !f.Exported {
			b.fail(CodeUnexportedField, fmt.Errorf("%w: %s", ErrUnexportedField, f.Name), fpath)
			continue
		}

		if n := b.field(f, attrs, index, fpath); n != nil {
			out = append(out, n)
		}
	}

	return out
}

// promote lifts the fields of an untagged embedded struct into its owner.
func (b *Builder) promote(f Field, index []int, path fieldPath, out []*Node) []*Node {
	if !f.Exported && f.Pointer {
		b.diags.AddWarning(CodeSkippedEmbedded,
			"unexported embedded pointer cannot be read", b.root, path.Field(f.Name).String())
		return out
	}

	key := f.Type.Identity()
	if b.active[key] {
		b.fail(CodeCyclicType, fmt.Errorf("%w: %s", ErrCyclicType, f.Type.ID()), path.Field(f.Name))
		return out
	}

	b.active[key] = true
	defer delete(b.active, key)

	return b.collect(f.Type, index, path, out)
}

// field builds the node of one participating field.
func (b *Builder) field(f Field, attrs tags.Attributes, index []int, path fieldPath) *Node {
	n := &Node{
		Name:   f.Name,
		Header: attrs.HeaderOr(f.Name),
		Inline: attrs.Inline,
		Index:  index,
		Type:   f.Type.String(),
	}

	if f.Type.Shape() != ShapeCollection {
		if attrs.Delimiter != "" {
			b.diags.AddWarning(CodeUnusedDelimiter,
				"collection delimiter set on a field that is not a collection", b.root, path.String())
		}

		if !b.resolve(n, f.Type, path) {
			return nil
		}

		return n
	}

	elemType := f.Type.Elem()
	if elemType.Shape() == ShapeCollection {
		b.fail(CodeNestedCollection, fmt.Errorf("%w: %s", ErrNestedCollection, f.Type), path)
		return nil
	}

	n.Kind = KindCollection
	n.Delimiter = attrs.Delimiter
	if n.Delimiter == "" {
		n.Delimiter = DefaultCollectionDelimiter
	}

	elem := &Node{
		Header: n.Header,
		Inline: n.Inline,
		Type:   elemType.String(),
	}
	if !b.resolve(elem, elemType, path.Elem()) {
		return nil
	}

	n.Children = []*Node{elem}

	return n
}

// resolve fills in kind and children of n for a non-collection descriptor.
func (b *Builder) resolve(n *Node, d Descriptor, path fieldPath) bool {
	switch d.Shape() {
	case ShapeUnsupported:
		b.fail(CodeUnsupportedKind, fmt.Errorf("%w: %s", ErrUnsupportedKind, d), path)
		return false

	case ShapeStruct:
		before := len(b.diags.Errors)
		n.Children = b.fields(d, path)
		if len(b.diags.Errors) > before {
			return false
		}
	}

	if len(n.Children) == 0 {
		if n.Inline {
			b.fail(CodeInlineScalar, fmt.Errorf("%w: %s", ErrInlineScalar, d), path)
			return false
		}

		n.Kind = KindTerminal
		return true
	}

	n.Kind = KindGroup

	return true
}

func (b *Builder) fail(code string, err error, path fieldPath) {
	b.diags.AddError(code, err, b.root, path.String())
}
