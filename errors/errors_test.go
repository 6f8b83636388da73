package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseResolve,
				Kind:     KindMethodNotFound,
				GoType:   "*errors.fakeTarget",
				Selector: "add:_:",
			},
			contains: []string{"[resolve]", "method_not_found", "*errors.fakeTarget", "add:_:"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseMarshal,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[marshal]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseInvoke,
				Kind:   KindInvalidInput,
				Detail: "nil target",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[invoke]", "invalid_input", "nil target", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseResolve,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:    PhaseResolve,
		Kind:     KindMethodNotFound,
		Selector: "foo",
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseResolve, Kind: KindMethodNotFound}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseFrame, Kind: KindMethodNotFound}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseResolve, Kind: KindInvalidInput}) {
		t.Error("Is should not match different kind")
	}

	// Non-Error target
	if err.Is(errors.New("plain")) {
		t.Error("Is should not match plain errors")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("inner")
	err := New(PhaseFrame, KindMethodNotFound).
		GoType("*errors.fakeTarget").
		Selector("missing:").
		Detail("arity %d", 1).
		Cause(cause).
		Build()

	if err.Phase != PhaseFrame {
		t.Errorf("Phase = %q, want %q", err.Phase, PhaseFrame)
	}
	if err.Kind != KindMethodNotFound {
		t.Errorf("Kind = %q, want %q", err.Kind, KindMethodNotFound)
	}
	if err.GoType != "*errors.fakeTarget" {
		t.Errorf("GoType = %q", err.GoType)
	}
	if err.Selector != "missing:" {
		t.Errorf("Selector = %q", err.Selector)
	}
	if err.Detail != "arity 1" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable via errors.Is")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	if err := MethodNotFound(PhaseResolve, "T", "sel:"); err.Kind != KindMethodNotFound {
		t.Errorf("MethodNotFound kind = %q", err.Kind)
	}
	if err := InvalidInput(PhaseMarshal, "bad"); err.Kind != KindInvalidInput {
		t.Errorf("InvalidInput kind = %q", err.Kind)
	}
	if err := OutOfBounds(PhaseExtract, 8, 4); !strings.Contains(err.Error(), "offset 8") {
		t.Errorf("OutOfBounds message = %q", err.Error())
	}
	if err := TypeMismatch(PhaseMarshal, "string", "int64"); !strings.Contains(err.Error(), "expected int64") {
		t.Errorf("TypeMismatch message = %q", err.Error())
	}
	if err := Unsupported(PhaseResolve, "variadic methods"); err.Kind != KindUnsupported {
		t.Errorf("Unsupported kind = %q", err.Kind)
	}
	inner := errors.New("x")
	if err := Wrap(PhaseInvoke, KindInvalidInput, inner, "ctx"); !errors.Is(err, inner) {
		t.Error("Wrap lost cause")
	}
}
