package plan

import "reflect"

// TypeID identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "tsvwriter/store"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Shape classifies a type, after pointer indirection, for plan building.
type Shape int

const (
	// ShapeScalar is rendered through its text form (basic types, strings, []byte,
	// maps, interfaces and anything implementing fmt.Stringer that is not a struct).
	ShapeScalar Shape = iota
	// ShapeStruct may contain further exported fields.
	ShapeStruct
	// ShapeCollection is a slice or array whose elements are visited one by one.
	ShapeCollection
	// ShapeUnsupported cannot be rendered (channels, functions, unsafe pointers).
	ShapeUnsupported
)

// Descriptor is a structural view of a type.
type Descriptor interface {
	// ID names the type after pointer indirection.
	ID() TypeID
	// String is the type as written in source.
	String() string
	// Identity is a comparable key unique to the type after pointer indirection.
	Identity() any
	Shape() Shape
	// Elem returns the element type of a ShapeCollection.
	Elem() Descriptor
	// NumField and Field enumerate the fields of a ShapeStruct in declaration order.
	NumField() int
	Field(i int) Field
}

// Field describes a struct field of a Descriptor.
type Field struct {
	Name     string
	Exported bool
	Embedded bool
	Pointer  bool // declared as a pointer
	Tag      reflect.StructTag
	Index    int
	Type     Descriptor
}
