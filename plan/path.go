package plan

import "strings"

// fieldPath builds a readable path string for diagnostics.
// Examples:
//   - "Order" for the root
//   - "Order.Customer" for a nested field
//   - "Order.Items[]" for a collection element
//   - "Order.Items[].Name" for a field within collection elements
type fieldPath struct {
	parts []string
}

func newFieldPath(root string) fieldPath {
	return fieldPath{parts: []string{root}}
}

// Field appends a field name to the path.
func (p fieldPath) Field(name string) fieldPath {
	return fieldPath{parts: append(append([]string{}, p.parts...), name)}
}

// Elem marks the last part as a collection element.
func (p fieldPath) Elem() fieldPath {
	parts := append([]string{}, p.parts...)
	parts[len(parts)-1] += "[]"

	return fieldPath{parts: parts}
}

func (p fieldPath) String() string {
	return strings.Join(p.parts, ".")
}
