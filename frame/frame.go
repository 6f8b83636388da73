package frame

import (
	"encoding/binary"

	"github.com/mman/dynamic/errors"
	"github.com/mman/dynamic/signature"
)

// Frame is generic, signature-shaped storage for one invocation: a byte
// buffer laid out to hold every argument slot the signature describes plus
// the return slot, the bound method identifier, and the one-shot invoked
// flag. A frame must not be reused across invocations.
//
// All slot access is bounds-checked against the computed layout. Values
// travel as uint64 words regardless of slot width; floats travel as their
// bit patterns and indirect slots carry object table handles.
type Frame struct {
	sig     *signature.Signature
	buf     []byte
	offsets []int
	retOff  int
	selID   uint32
	bound   bool
	invoked bool
}

// New builds a frame shaped by sig. Layout is computed once: each slot is
// aligned to its own size, the return slot follows the arguments.
func New(sig *signature.Signature) *Frame {
	n := sig.NumArguments()
	offsets := make([]int, n)

	off := 0
	for i := 0; i < n; i++ {
		size := sig.ArgumentType(i).Size()
		off = alignTo(off, size)
		offsets[i] = off
		off += size
	}

	retOff := off
	if retSize := sig.ReturnLength(); retSize > 0 {
		retOff = alignTo(off, retSize)
		off = retOff + retSize
	}

	return &Frame{
		sig:     sig,
		buf:     make([]byte, off),
		offsets: offsets,
		retOff:  retOff,
	}
}

// Signature returns the signature the frame is shaped by.
func (f *Frame) Signature() *signature.Signature {
	return f.sig
}

// BindSelector writes the method identifier into slot 1. The binding is
// set once, immediately after construction; later calls are no-ops.
func (f *Frame) BindSelector(selID uint32) {
	if f.bound {
		return
	}
	f.selID = selID
	f.bound = true
	f.write(1, uint64(selID), signature.KindSelector.Size())
}

// SelectorID returns the bound method identifier, 0 if unbound.
func (f *Frame) SelectorID() uint32 {
	return f.selID
}

// WriteWord stores a value word into an argument slot. The word is
// truncated to the slot's declared size.
func (f *Frame) WriteWord(slot int, word uint64) error {
	if slot < 0 || slot >= len(f.offsets) {
		return errors.OutOfBounds(errors.PhaseMarshal, slot, len(f.offsets))
	}
	f.write(slot, word, f.sig.ArgumentType(slot).Size())
	return nil
}

// ReadWord loads the value word of an argument slot.
func (f *Frame) ReadWord(slot int) (uint64, error) {
	if slot < 0 || slot >= len(f.offsets) {
		return 0, errors.OutOfBounds(errors.PhaseInvoke, slot, len(f.offsets))
	}
	return f.read(f.offsets[slot], f.sig.ArgumentType(slot).Size()), nil
}

// WriteReturn stores the return value word into the return slot.
func (f *Frame) WriteReturn(word uint64) error {
	size := f.sig.ReturnLength()
	if size == 0 {
		return errors.OutOfBounds(errors.PhaseInvoke, f.retOff, len(f.buf))
	}
	f.writeAt(f.retOff, word, size)
	return nil
}

// ReadReturn loads the raw return value word; 0 for void signatures.
func (f *Frame) ReadReturn() uint64 {
	size := f.sig.ReturnLength()
	if size == 0 {
		return 0
	}
	var raw [8]byte
	f.CopyReturn(raw[:])
	return word(raw[:], size)
}

// CopyReturn copies the raw return bytes into dst, which must be at least
// ReturnLength bytes long.
func (f *Frame) CopyReturn(dst []byte) error {
	size := f.sig.ReturnLength()
	if len(dst) < size {
		return errors.OutOfBounds(errors.PhaseExtract, size, len(dst))
	}
	copy(dst, f.buf[f.retOff:f.retOff+size])
	return nil
}

// Invoked reports whether the frame has already been fired.
func (f *Frame) Invoked() bool {
	return f.invoked
}

// MarkInvoked flips the one-shot flag. Returns false if the frame was
// already fired; the caller must then skip the call.
func (f *Frame) MarkInvoked() bool {
	if f.invoked {
		return false
	}
	f.invoked = true
	return true
}

func (f *Frame) write(slot int, word uint64, size int) {
	f.writeAt(f.offsets[slot], word, size)
}

func (f *Frame) writeAt(off int, word uint64, size int) {
	switch size {
	case 1:
		f.buf[off] = byte(word)
	case 2:
		binary.LittleEndian.PutUint16(f.buf[off:], uint16(word))
	case 4:
		binary.LittleEndian.PutUint32(f.buf[off:], uint32(word))
	case 8:
		binary.LittleEndian.PutUint64(f.buf[off:], word)
	}
}

func (f *Frame) read(off, size int) uint64 {
	return word(f.buf[off:], size)
}

func word(b []byte, size int) uint64 {
	switch size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func alignTo(off, align int) int {
	if align <= 1 {
		return off
	}
	return (off + align - 1) &^ (align - 1)
}
