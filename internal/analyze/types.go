package analyze

import (
	"go/types"
	"reflect"

	"tsvwriter/plan"
)

// Descriptor adapts a go/types type to plan.Descriptor.
type Descriptor struct {
	t types.Type
}

// NewDescriptor wraps t.
func NewDescriptor(t types.Type) Descriptor {
	return Descriptor{t: t}
}

// base strips aliases and pointers.
func (d Descriptor) base() types.Type {
	t := types.Unalias(d.t)
	for {
		p, ok := t.Underlying().(*types.Pointer)
		if !ok {
			return t
		}
		t = types.Unalias(p.Elem())
	}
}

func (d Descriptor) ID() plan.TypeID {
	b := d.base()

	if named, ok := b.(*types.Named); ok {
		obj := named.Obj()
		if obj.Pkg() == nil {
			return plan.TypeID{Name: obj.Name()}
		}

		return plan.TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}
	}

	return plan.TypeID{Name: b.String()}
}

func (d Descriptor) String() string {
	return types.TypeString(d.t, (*types.Package).Name)
}

func (d Descriptor) Identity() any {
	return d.base()
}

func (d Descriptor) Shape() plan.Shape {
	b := d.base()

	switch u := b.Underlying().(type) {
	case *types.Struct:
		return plan.ShapeStruct

	case *types.Slice:
		if isByte(u.Elem()) || isStringer(d.t) {
			return plan.ShapeScalar
		}
		return plan.ShapeCollection

	case *types.Array:
		if isByte(u.Elem()) || isStringer(d.t) {
			return plan.ShapeScalar
		}
		return plan.ShapeCollection

	case *types.Chan, *types.Signature:
		return plan.ShapeUnsupported

	case *types.Basic:
		if u.Kind() == types.UnsafePointer || u.Kind() == types.Invalid {
			return plan.ShapeUnsupported
		}
		return plan.ShapeScalar

	default:
		return plan.ShapeScalar
	}
}

func (d Descriptor) Elem() plan.Descriptor {
	switch u := d.base().Underlying().(type) {
	case *types.Slice:
		return Descriptor{t: u.Elem()}
	case *types.Array:
		return Descriptor{t: u.Elem()}
	default:
		return nil
	}
}

func (d Descriptor) structType() *types.Struct {
	st, _ := d.base().Underlying().(*types.Struct)
	return st
}

func (d Descriptor) NumField() int {
	st := d.structType()
	if st == nil {
		return 0
	}

	return st.NumFields()
}

func (d Descriptor) Field(i int) plan.Field {
	st := d.structType()
	f := st.Field(i)
	_, isPtr := types.Unalias(f.Type()).Underlying().(*types.Pointer)

	return plan.Field{
		Name:     f.Name(),
		Exported: f.Exported(),
		Embedded: f.Embedded(),
		Pointer:  isPtr,
		Tag:      reflect.StructTag(st.Tag(i)),
		Index:    i,
		Type:     Descriptor{t: f.Type()},
	}
}

func isByte(t types.Type) bool {
	b, ok := types.Unalias(t).Underlying().(*types.Basic)
	return ok && b.Kind() == types.Uint8
}

// isStringer reports whether t has a String() string or Error() string method.
func isStringer(t types.Type) bool {
	ms := types.NewMethodSet(t)

	for _, name := range []string{"String", "Error"} {
		sel := ms.Lookup(nil, name)
		if sel == nil {
			continue
		}

		sig, ok := sel.Type().(*types.Signature)
		if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
			continue
		}

		if b, ok := sig.Results().At(0).Type().(*types.Basic); ok && b.Kind() == types.String {
			return true
		}
	}

	return false
}
