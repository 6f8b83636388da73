// Package frame implements the generic call frame: a byte buffer shaped by
// a resolved signature, holding every argument slot and the return slot at
// computed, size-aligned offsets.
//
// The frame is exclusively owned by one invocation. It carries the bound
// method identifier (set once after construction) and the one-shot invoked
// flag that guards against re-firing. All reads and writes are
// bounds-checked; there is no untyped memory access.
package frame
