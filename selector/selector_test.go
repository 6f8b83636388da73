package selector

import (
	"testing"
)

func TestSel_Interning(t *testing.T) {
	a := Sel("add:_:")
	b := Sel("add:_:")
	if a != b {
		t.Fatal("same spelling should intern to the same pointer")
	}
	if a.ID() == 0 {
		t.Fatal("interned selector must not have id 0")
	}

	c := Sel("sub:_:")
	if c == a {
		t.Fatal("different spellings must not share a selector")
	}
	if c.ID() == a.ID() {
		t.Fatal("different spellings must not share an id")
	}
}

func TestSel_Parse(t *testing.T) {
	tests := []struct {
		spelling string
		base     string
		goName   string
		numArgs  int
	}{
		{"add:_:", "add", "Add", 2},
		{"description", "description", "Description", 0},
		{"setValue:", "setValue", "SetValue", 1},
		{"get-value:", "get-value", "GetValue", 1},
		{"get-http-url", "get-http-url", "GetHttpUrl", 0},
	}

	for _, tt := range tests {
		s := Sel(tt.spelling)
		if s.Base() != tt.base {
			t.Errorf("Sel(%q).Base() = %q, want %q", tt.spelling, s.Base(), tt.base)
		}
		if s.GoName() != tt.goName {
			t.Errorf("Sel(%q).GoName() = %q, want %q", tt.spelling, s.GoName(), tt.goName)
		}
		if s.NumArgs() != tt.numArgs {
			t.Errorf("Sel(%q).NumArgs() = %d, want %d", tt.spelling, s.NumArgs(), tt.numArgs)
		}
		if s.String() != tt.spelling {
			t.Errorf("Sel(%q).String() = %q", tt.spelling, s.String())
		}
	}
}

func TestByID(t *testing.T) {
	s := Sel("lookup-by-id:")

	got, ok := ByID(s.ID())
	if !ok {
		t.Fatal("ByID failed for a live selector")
	}
	if got != s {
		t.Fatal("ByID returned a different selector")
	}

	if _, ok := ByID(0); ok {
		t.Fatal("id 0 must be invalid")
	}
	if _, ok := ByID(1 << 30); ok {
		t.Fatal("unknown id must be invalid")
	}
}

func TestSel_Concurrent(t *testing.T) {
	done := make(chan *Selector, 16)
	for i := 0; i < 16; i++ {
		go func() {
			done <- Sel("concurrent:_:")
		}()
	}

	first := <-done
	for i := 1; i < 16; i++ {
		if s := <-done; s != first {
			t.Fatal("concurrent interning produced distinct selectors")
		}
	}
}
