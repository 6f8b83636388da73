// Package dynamic provides reflection-based invocation of methods on
// arbitrary objects at runtime, given only a textual method selector and
// arguments whose types are not known at compile time.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	dynamic/             Root package with the Invocation API and Call helper
//	├── selector/        Interned method identifiers
//	├── signature/       Type descriptors and the lazy signature registry
//	├── frame/           Signature-shaped call frames
//	├── object/          Reference-counted object handle table
//	├── errors/          Structured error types for debugging
//	└── cmd/invoke/      CLI for invoking methods on registered targets
//
// # Quick Start
//
// Build and fire an invocation by hand:
//
//	inv, err := dynamic.NewInvocation(&Calculator{}, selector.Sel("add:_:"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inv.Close()
//
//	inv.SetArgument(2, 1)
//	inv.SetArgument(3, 2)
//	inv.Invoke()
//
//	var result int
//	inv.GetReturnValue(&result) // 5
//
// Or use the convenience helper:
//
//	result, err := dynamic.Call(&Calculator{}, "add:_:", 2, 3)
//
// # Calling Convention
//
// A resolved signature reserves two implicit leading slots, the receiver
// and the selector; user arguments start at frame slot 2. The public
// SetArgument index is 1-based over the user arguments only: index 1 is
// the first argument of the method.
//
// # Error Handling
//
// Exactly one failure kind surfaces through the public contract: method
// not recognized, raised during construction when the target's type does
// not implement the selector. The Invocation returned alongside that
// error is inert; every operation on it is a safe no-op. Argument type
// mismatches are caller contract violations, and failures inside the
// invoked method propagate as panics, untranslated.
//
// # Thread Safety
//
// The selector intern table and the signature registry are safe for
// concurrent use. An Invocation is NOT thread-safe and must be driven by
// a single goroutine.
//
// # Tracing
//
// A process-wide zap sink, disabled by default, can be enabled with
// SetLogger to trace every step of an invocation: construction, resolved
// metadata, each argument set, the invoke event, and the extracted return
// value. WithLogger injects a sink for a single Invocation instead.
package dynamic
