// Package diagnostic provides structured errors, warnings and notes produced
// while building export plans.
//
// Key capabilities:
//   - Configuration errors carrying the offending type and field path
//   - Warnings for metadata that has no effect (e.g. a delimiter on a scalar)
//   - A joined error that keeps the builder's sentinel errors visible to errors.Is
package diagnostic
