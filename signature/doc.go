// Package signature resolves method calling shapes from runtime metadata.
//
// A Signature is derived from a (target type, selector) pair via reflect:
// ordered argument descriptors including the two implicit leading slots the
// calling convention reserves (receiver and selector), the return
// descriptor, and the return byte length. Resolution is a pure metadata
// lookup; it never calls the method.
//
// Descriptors are single-character codes with fixed sizes ('q' = int64,
// 'd' = float64, '@' = object reference, 'v' = void, ...). The Registry
// caches resolved signatures per pair and fills lazily on first lookup.
package signature
