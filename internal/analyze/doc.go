// Package analyze loads Go packages without running them and exposes their
// struct types as plan descriptors.
//
// It uses golang.org/x/tools/go/packages with go/types so that a header or plan
// can be previewed for a type that is not linked into the running binary.
//
// Key types:
//   - Graph: every named type of the loaded packages, keyed by plan.TypeID
//   - Descriptor: a go/types view implementing plan.Descriptor
package analyze
