package emit

import (
	"fmt"
	"reflect"
	"strings"

	"tsvwriter/plan"
)

// render returns the columns of n for its value v. An invalid v (absent because an
// enclosing pointer was nil) renders as empty columns.
func render(n *plan.Node, v reflect.Value) ([]string, error) {
	switch n.Kind {
	case plan.KindTerminal:
		return []string{text(v)}, nil

	case plan.KindCollection:
		return renderCollection(n, v)

	default:
		return renderGroup(n, v)
	}
}

func renderGroup(n *plan.Node, v reflect.Value) ([]string, error) {
	out := make([]string, 0, n.Width())
	sv := indirect(v)

	for _, c := range n.Children {
		var cv reflect.Value
		if sv.IsValid() {
			var err error
			cv, err = sv.FieldByIndexErr(c.Index)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrFieldAccess, c.Name, err)
			}
		}

		cols, err := render(c, cv)
		if err != nil {
			return nil, err
		}
		out = append(out, cols...)
	}

	if !n.Inline {
		out = append(out, text(v))
	}

	return out, nil
}

// renderCollection renders every element against the element plan and joins the
// values of each column across elements.
func renderCollection(n *plan.Node, v reflect.Value) ([]string, error) {
	elem := n.Elem()
	width := elem.Width()
	out := make([]string, width)

	sv := indirect(v)
	if !sv.IsValid() {
		return out, nil
	}

	parts := make([][]string, width)
	for i := range sv.Len() {
		cols, err := render(elem, sv.Index(i))
		if err != nil {
			return nil, err
		}

		for c, col := range cols {
			parts[c] = append(parts[c], col)
		}
	}

	for c := range out {
		out[c] = strings.Join(parts[c], n.Delimiter)
	}

	return out, nil
}

// indirect follows pointers and interfaces, returning the invalid Value on nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}

	return v
}

// text returns the default text form of v. Stringers and errors render through
// their methods; other pointers are followed; nil renders empty.
func text(v reflect.Value) string {
	for v.IsValid() {
		switch v.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
			if v.IsNil() {
				return ""
			}
		}

		if v.CanInterface() {
			switch x := v.Interface().(type) {
			case fmt.Stringer:
				return x.String()
			case error:
				return x.Error()
			case []byte:
				return string(x)
			}
		}

		if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface {
			break
		}
		v = v.Elem()
	}

	if !v.IsValid() {
		return ""
	}

	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		return string(v.Bytes())
	}

	return fmt.Sprint(v.Interface())
}
