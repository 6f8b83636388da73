// Package errors provides structured error types for the dynamic library.
//
// Errors are categorized by Phase (where in the invocation pipeline the
// error occurred) and Kind (error category). The Error type includes the
// target's Go type name, the method selector, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindMethodNotFound).
//		GoType("*main.Calculator").
//		Selector("add:_:").
//		Detail("arity mismatch: method takes 3 arguments").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MethodNotFound(errors.PhaseResolve, "*main.Calculator", "add:_:")
//	err := errors.OutOfBounds(errors.PhaseMarshal, 24, 16)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
