package plan

import (
	"fmt"
	"reflect"
)

var (
	stringerType = reflect.TypeFor[fmt.Stringer]()
	errorType    = reflect.TypeFor[error]()
)

type reflectType struct {
	t reflect.Type
}

// Reflect returns the Descriptor of a run-time type.
func Reflect(t reflect.Type) Descriptor {
	return reflectType{t: t}
}

// Indirect strips all pointer levels from t.
func Indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

func (r reflectType) base() reflect.Type {
	return Indirect(r.t)
}

func (r reflectType) ID() TypeID {
	b := r.base()
	if b.Name() == "" {
		return TypeID{Name: b.String()}
	}

	return TypeID{PkgPath: b.PkgPath(), Name: b.Name()}
}

func (r reflectType) String() string {
	return r.t.String()
}

func (r reflectType) Identity() any {
	return r.base()
}

func (r reflectType) Shape() Shape {
	b := r.base()

	switch b.Kind() {
	case reflect.Struct:
		return ShapeStruct

	case reflect.Slice, reflect.Array:
		if b.Elem().Kind() == reflect.Uint8 || isStringer(r.t) {
			return ShapeScalar
		}

		return ShapeCollection

	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Invalid:
		return ShapeUnsupported

	default:
		return ShapeScalar
	}
}

func (r reflectType) Elem() Descriptor {
	return reflectType{t: r.base().Elem()}
}

func (r reflectType) NumField() int {
	return r.base().NumField()
}

func (r reflectType) Field(i int) Field {
	f := r.base().Field(i)

	return Field{
		Name:     f.Name,
		Exported: f.IsExported(),
		Embedded: f.Anonymous,
		Pointer:  f.Type.Kind() == reflect.Pointer,
		Tag:      f.Tag,
		Index:    i,
		Type:     reflectType{t: f.Type},
	}
}

func isStringer(t reflect.Type) bool {
	return t.Implements(stringerType) || t.Implements(errorType)
}
