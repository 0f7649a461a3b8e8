// Package plan builds the traversal plan used to flatten values into delimited rows.
//
// A plan is built once per type from field metadata (struct tags, or an overlay
// Source) and is immutable afterwards. Every node is one of three kinds:
//
//   - KindTerminal: a leaf producing exactly one column
//   - KindGroup: a nested struct; its children's columns come first, followed by its
//     own column unless the node is inline
//   - KindCollection: a slice or array; its single child describes one element, and the
//     per-element values of each column are joined with the collection delimiter
//
// The root node is an inline group without a header.
//
// A row therefore has one column per terminal plus one per non-inline group: a
// nested struct that is not inline contributes its fields and then its own text form.
// Mark nested structs inline when only their fields should appear.
//
// Building works on a Descriptor so the same builder serves reflect.Type values at run
// time and go/types types during static analysis.
package plan
