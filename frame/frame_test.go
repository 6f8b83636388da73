package frame

import (
	"math"
	"testing"

	"github.com/mman/dynamic/selector"
	"github.com/mman/dynamic/signature"
)

type shapes struct{}

func (shapes) Mixed(a int8, b int64, c float64) int32 { return 0 }

func (shapes) Nothing() {}

func mustResolve(t *testing.T, target any, spelling string) *signature.Signature {
	t.Helper()
	sig, err := signature.NewRegistry().Resolve(target, selector.Sel(spelling))
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", spelling, err)
	}
	return sig
}

func TestFrame_Layout(t *testing.T) {
	sig := mustResolve(t, shapes{}, "mixed:_:_:")
	f := New(sig)

	// Slots: '@'(4) ':'(4) 'c'(1) 'q'(8) 'd'(8), return 'i'(4).
	// Offsets: 0, 4, 8, 16, 24; return at 32.
	wantOffsets := []int{0, 4, 8, 16, 24}
	for i, want := range wantOffsets {
		if f.offsets[i] != want {
			t.Errorf("slot %d offset = %d, want %d", i, f.offsets[i], want)
		}
	}
	if f.retOff != 32 {
		t.Errorf("return offset = %d, want 32", f.retOff)
	}
	if len(f.buf) != 36 {
		t.Errorf("buffer length = %d, want 36", len(f.buf))
	}
}

func TestFrame_WriteRead(t *testing.T) {
	sig := mustResolve(t, shapes{}, "mixed:_:_:")
	f := New(sig)

	if err := f.WriteWord(2, uint64(uint8(0xfe))); err != nil {
		t.Fatalf("WriteWord(2) failed: %v", err)
	}
	neg := int64(-1)
	if err := f.WriteWord(3, uint64(neg)); err != nil {
		t.Fatalf("WriteWord(3) failed: %v", err)
	}
	bits := math.Float64bits(3.5)
	if err := f.WriteWord(4, bits); err != nil {
		t.Fatalf("WriteWord(4) failed: %v", err)
	}

	if w, _ := f.ReadWord(2); w != 0xfe {
		t.Errorf("slot 2 = %#x, want 0xfe", w)
	}
	if w, _ := f.ReadWord(3); w != math.MaxUint64 {
		t.Errorf("slot 3 = %#x, want all ones", w)
	}
	if w, _ := f.ReadWord(4); w != bits {
		t.Errorf("slot 4 = %#x, want %#x", w, bits)
	}

	// Last write wins.
	f.WriteWord(2, 7)
	if w, _ := f.ReadWord(2); w != 7 {
		t.Errorf("slot 2 after rewrite = %d, want 7", w)
	}
}

func TestFrame_Bounds(t *testing.T) {
	sig := mustResolve(t, shapes{}, "mixed:_:_:")
	f := New(sig)

	if err := f.WriteWord(5, 1); err == nil {
		t.Error("write past the last slot should fail")
	}
	if err := f.WriteWord(-1, 1); err == nil {
		t.Error("negative slot should fail")
	}
	if _, err := f.ReadWord(99); err == nil {
		t.Error("read past the last slot should fail")
	}
}

func TestFrame_Return(t *testing.T) {
	sig := mustResolve(t, shapes{}, "mixed:_:_:")
	f := New(sig)

	if err := f.WriteReturn(uint64(uint32(12345))); err != nil {
		t.Fatalf("WriteReturn failed: %v", err)
	}
	if got := f.ReadReturn(); got != 12345 {
		t.Errorf("ReadReturn = %d, want 12345", got)
	}

	dst := make([]byte, 4)
	if err := f.CopyReturn(dst); err != nil {
		t.Fatalf("CopyReturn failed: %v", err)
	}
	if dst[0] != 0x39 || dst[1] != 0x30 {
		t.Errorf("CopyReturn bytes = %v", dst)
	}
	if err := f.CopyReturn(make([]byte, 2)); err == nil {
		t.Error("CopyReturn into a short buffer should fail")
	}
}

func TestFrame_VoidReturn(t *testing.T) {
	sig := mustResolve(t, shapes{}, "nothing")
	f := New(sig)

	if err := f.WriteReturn(1); err == nil {
		t.Error("WriteReturn on a void frame should fail")
	}
	if got := f.ReadReturn(); got != 0 {
		t.Errorf("ReadReturn on void frame = %d, want 0", got)
	}
}

func TestFrame_BindOnce(t *testing.T) {
	sig := mustResolve(t, shapes{}, "nothing")
	f := New(sig)

	f.BindSelector(7)
	f.BindSelector(9)
	if f.SelectorID() != 7 {
		t.Fatalf("SelectorID = %d, binding must be set once", f.SelectorID())
	}
	if w, _ := f.ReadWord(1); w != 7 {
		t.Fatalf("selector slot = %d, want 7", w)
	}
}

func TestFrame_OneShot(t *testing.T) {
	sig := mustResolve(t, shapes{}, "nothing")
	f := New(sig)

	if f.Invoked() {
		t.Fatal("fresh frame must not be invoked")
	}
	if !f.MarkInvoked() {
		t.Fatal("first MarkInvoked must succeed")
	}
	if f.MarkInvoked() {
		t.Fatal("second MarkInvoked must report already fired")
	}
	if !f.Invoked() {
		t.Fatal("Invoked must stay set")
	}
}
