package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the invocation pipeline the error occurred
type Phase string

const (
	PhaseResolve Phase = "resolve" // signature resolution
	PhaseFrame   Phase = "frame"   // call frame construction
	PhaseMarshal Phase = "marshal" // argument marshalling
	PhaseInvoke  Phase = "invoke"  // performing the call
	PhaseExtract Phase = "extract" // return value extraction
)

// Kind categorizes the error
type Kind string

const (
	KindMethodNotFound Kind = "method_not_found"
	KindInvalidInput   Kind = "invalid_input"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindTypeMismatch   Kind = "type_mismatch"
	KindUnsupported    Kind = "unsupported"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	Selector string
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.GoType != "" || e.Selector != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Selector != "" {
			b.WriteString("type ")
			b.WriteString(e.GoType)
			b.WriteString(", selector ")
			b.WriteString(e.Selector)
		} else if e.GoType != "" {
			b.WriteString("type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("selector ")
			b.WriteString(e.Selector)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Selector != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// GoType sets the Go type name of the target
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Selector sets the offending method selector
func (b *Builder) Selector(s string) *Builder {
	b.err.Selector = s
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MethodNotFound reports that the target's type does not implement the
// selector. This is the only kind surfaced through the public contract.
func MethodNotFound(phase Phase, goType, selector string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindMethodNotFound,
		GoType:   goType,
		Selector: selector,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, offset, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("offset %d out of bounds (length %d)", offset, length),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, goType, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		GoType: goType,
		Detail: fmt.Sprintf("expected %s", want),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
