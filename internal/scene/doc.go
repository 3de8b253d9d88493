// Package scene holds the catalog of gallery scenes.
//
// A [Descriptor] names a scene, the generator that draws it and the
// [ParamSpec] list its controls are built from. Descriptors are collected
// into a [Registry], an ordered read-only sequence:
//
//   - [Builtin]: the twelve scenes shipped with the binary
//   - [LoadCatalog] / [DecodeCatalog]: yaml scene lists loaded at runtime
//   - [Validate]: checks that every default satisfies its own bounds
//
// Lookup of an unknown slug returns [ErrNotFound]; display surfaces turn it
// into a fallback view rather than failing.
package scene
