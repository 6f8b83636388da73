package dynamic

import (
	"errors"
	"testing"

	dynerrors "github.com/mman/dynamic/errors"
)

func TestCall_RoundTrip(t *testing.T) {
	result, err := Call(&Calculator{}, "add:_:", 2, 3)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != int(5) {
		t.Fatalf("result = %v (%T), want 5", result, result)
	}
}

func TestCall_Void(t *testing.T) {
	calc := &Calculator{calls: 9}
	result, err := Call(calc, "reset")
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != nil {
		t.Fatalf("void call returned %v", result)
	}
	if calc.calls != 0 {
		t.Fatal("side effect did not run")
	}
}

func TestCall_String(t *testing.T) {
	result, err := Call(&Calculator{}, "describe")
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != "calculator" {
		t.Fatalf("result = %v, want calculator", result)
	}
}

func TestCall_Object(t *testing.T) {
	result, err := Call(&Calculator{}, "makeWidget:", "crank")
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	w, ok := result.(*Widget)
	if !ok || w.Name != "crank" {
		t.Fatalf("result = %#v, want *Widget{crank}", result)
	}
}

func TestCall_WrongArgumentCount(t *testing.T) {
	_, err := Call(&Calculator{}, "add:_:", 2)
	if err == nil {
		t.Fatal("Call should refuse an incomplete argument list")
	}

	var derr *dynerrors.Error
	if !errors.As(err, &derr) {
		t.Fatalf("expected a structured error, got %v", err)
	}
	if derr.Phase != dynerrors.PhaseFrame || derr.Kind != dynerrors.KindInvalidInput {
		t.Fatalf("error = [%s] %s, want [frame] invalid_input", derr.Phase, derr.Kind)
	}
}

func TestCall_MethodNotFound(t *testing.T) {
	_, err := Call(&Calculator{}, "nonsense:")
	if err == nil {
		t.Fatal("Call should fail for an unknown selector")
	}

	var derr *dynerrors.Error
	if !errors.As(err, &derr) || derr.Kind != dynerrors.KindMethodNotFound {
		t.Fatalf("expected method_not_found, got %v", err)
	}
}
