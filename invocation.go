package dynamic

import (
	"math"
	"reflect"

	"go.uber.org/zap"

	"github.com/mman/dynamic/errors"
	"github.com/mman/dynamic/frame"
	"github.com/mman/dynamic/object"
	"github.com/mman/dynamic/selector"
	"github.com/mman/dynamic/signature"
)

// Invocation ties one target, one selector, and one call frame together
// for a single dynamic method call.
//
// Lifecycle: construct, set arguments (any order, repeatable, last write
// wins), Invoke exactly once, optionally extract the return value, Close.
// When construction fails to resolve the signature the returned Invocation
// is inert: every later operation is a silent no-op. An Invocation is not
// safe for concurrent use.
type Invocation struct {
	target  reflect.Value
	sel     *selector.Selector
	sig     *signature.Signature
	frame   *frame.Frame
	objects *object.Table
	owned   []object.Handle
	slots   []object.Handle
	log     *zap.Logger
	closed  bool
}

// Option configures an Invocation at construction.
type Option func(*Invocation)

// WithLogger injects a diagnostic sink for this Invocation, overriding the
// process-wide logger.
func WithLogger(l *zap.Logger) Option {
	return func(inv *Invocation) {
		inv.log = l
	}
}

// WithObjectTable shares an object table between invocations. By default
// each Invocation owns a fresh table scoped to its lifetime.
func WithObjectTable(t *object.Table) Option {
	return func(inv *Invocation) {
		inv.objects = t
	}
}

// NewInvocation resolves sel against target's runtime type and builds the
// call frame. On resolution failure the error carries the target's type
// name and the selector, and the returned Invocation is inert but safe to
// use: SetArgument, Invoke, and the extractors all become no-ops.
//
// The Invocation holds a non-owning reference to target for the lifetime
// of the call. Release frame resources with Close on every path.
func NewInvocation(target any, sel *selector.Selector, opts ...Option) (*Invocation, error) {
	inv := &Invocation{
		sel: sel,
		log: Logger(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	if inv.objects == nil {
		inv.objects = object.NewTable()
	}

	inv.log.Debug("invocation: construct", zap.String("selector", sel.String()))

	sig, err := signature.Default().Resolve(target, sel)
	if err != nil {
		inv.log.Debug("invocation: resolution failed", zap.Error(err))
		return inv, err
	}

	inv.sig = sig
	inv.target = reflect.ValueOf(target)
	inv.frame = frame.New(sig)
	inv.slots = make([]object.Handle, sig.NumArguments())

	th := inv.objects.Insert(target)
	inv.owned = append(inv.owned, th)
	inv.slots[0] = th
	inv.frame.WriteWord(0, uint64(th))
	inv.frame.BindSelector(sel.ID())

	inv.log.Debug("invocation: resolved",
		zap.String("type", sig.TargetType().String()),
		zap.String("method", sig.Method().Name),
		zap.Int("numberOfArguments", sig.NumArguments()),
		zap.String("returnType", sig.ReturnType().String()),
		zap.Int("returnLength", sig.ReturnLength()),
	)
	return inv, nil
}

// NumberOfArguments returns the total argument count including the two
// implicit leading slots; 0 for an inert Invocation.
func (inv *Invocation) NumberOfArguments() int {
	if inv.sig == nil {
		return 0
	}
	return inv.sig.NumArguments()
}

// ReturnLength returns the return value size in bytes; 0 for void methods
// and inert Invocations.
func (inv *Invocation) ReturnLength() int {
	if inv.sig == nil {
		return 0
	}
	return inv.sig.ReturnLength()
}

// ReturnTypeString returns the return type descriptor code, "" when inert.
func (inv *Invocation) ReturnTypeString() string {
	if inv.sig == nil {
		return ""
	}
	return inv.sig.ReturnType().String()
}

// ArgumentTypeString returns the descriptor code of slot i (0 = receiver,
// 1 = selector), "" when inert or out of range.
func (inv *Invocation) ArgumentTypeString(i int) string {
	if inv.sig == nil || i < 0 || i >= inv.sig.NumArguments() {
		return ""
	}
	return inv.sig.ArgumentType(i).String()
}

// SetArgument writes value into the frame slot at the given index.
// Index 1 is the first user-supplied argument; the implicit receiver and
// selector slots are not settable through this API. A value whose
// representation does not match the slot's declared type is a caller
// contract violation, not a recoverable error. May be called repeatedly
// for the same index (last write wins) and in any order before Invoke.
func (inv *Invocation) SetArgument(value any, index int) {
	if inv.sig == nil {
		return
	}

	slot := index + 1
	if index < 1 || slot >= inv.sig.NumArguments() {
		inv.log.Debug("invocation: argument index out of range", zap.Int("index", index))
		return
	}

	kind := inv.sig.ArgumentType(slot)
	var word uint64
	if kind.Indirect() {
		// Last write wins: the handle of an overwritten value is dropped
		// and stops being frame-owned, so Close cannot touch a reused
		// handle number twice.
		if prev := inv.slots[slot]; prev != 0 {
			inv.objects.Release(prev)
			inv.disown(prev)
			inv.slots[slot] = 0
		}
		if value != nil {
			h := inv.objects.Insert(value)
			inv.owned = append(inv.owned, h)
			inv.slots[slot] = h
			word = uint64(h)
		}
	} else {
		word = scalarWord(reflect.ValueOf(value), kind)
	}

	inv.frame.WriteWord(slot, word)
	inv.log.Debug("invocation: argument set",
		zap.Int("index", index),
		zap.String("type", kind.String()),
	)
}

// Invoke performs the call exactly once. A second call on the same
// Invocation is a silent no-op, as is a call on an inert Invocation.
// Panics raised inside the target's own method propagate untouched.
func (inv *Invocation) Invoke() {
	if inv.sig == nil || inv.frame == nil {
		return
	}
	if !inv.frame.MarkInvoked() {
		inv.log.Debug("invocation: already fired, skipping")
		return
	}

	method := inv.sig.Method()
	mt := method.Type

	in := make([]reflect.Value, mt.NumIn())
	in[0] = inv.target
	for i := 1; i < mt.NumIn(); i++ {
		slot := i + 1
		word, _ := inv.frame.ReadWord(slot)
		in[i] = inv.decodeSlot(word, inv.sig.ArgumentType(slot), mt.In(i))
	}

	inv.log.Debug("invocation: invoke",
		zap.String("method", method.Name),
		zap.Uint32("selector", inv.frame.SelectorID()),
	)

	out := method.Func.Call(in)
	if inv.sig.ReturnType() == signature.KindVoid {
		return
	}

	word := inv.encodeResult(out[0], inv.sig.ReturnType())
	inv.frame.WriteReturn(word)
	inv.log.Debug("invocation: return stored",
		zap.String("type", inv.sig.ReturnType().String()),
		zap.Uint64("word", word),
	)
}

// GetReturnValue copies the return slot into dest, which must be a
// non-nil pointer whose element type matches the method's declared return
// type in size and layout; a mismatch is a caller contract violation.
// A no-op for void methods, inert Invocations, and invalid destinations.
func (inv *Invocation) GetReturnValue(dest any) {
	if inv.sig == nil || inv.sig.ReturnType() == signature.KindVoid {
		return
	}

	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		inv.log.Debug("invocation: return destination is not a pointer")
		return
	}

	word := inv.frame.ReadReturn()
	rv := inv.decodeSlot(word, inv.sig.ReturnType(), dv.Elem().Type())
	if rv.IsValid() {
		dv.Elem().Set(rv)
	}
	inv.log.Debug("invocation: return extracted", zap.Uint64("word", word))
}

// ReturnValue decodes the return slot into its natural Go value.
// Returns (nil, false) for void methods and inert Invocations.
func (inv *Invocation) ReturnValue() (any, bool) {
	if inv.sig == nil || inv.sig.ReturnType() == signature.KindVoid {
		return nil, false
	}

	word := inv.frame.ReadReturn()
	kind := inv.sig.ReturnType()
	if kind.Indirect() {
		v, ok := inv.objects.Get(object.Handle(word))
		return v, ok
	}
	rv := inv.decodeSlot(word, kind, inv.sig.Method().Type.Out(0))
	return rv.Interface(), true
}

// ReturnsAny reports whether the method returns anything at all.
func (inv *Invocation) ReturnsAny() bool {
	return inv.sig != nil && inv.sig.ReturnType() != signature.KindVoid
}

// ReturnsObject reports whether the return type descriptor names an
// object reference.
func (inv *Invocation) ReturnsObject() bool {
	return inv.sig != nil && inv.sig.ReturnType().IsObject()
}

// ReturnedObject extracts an object-typed return value with ownership.
// It returns (nil, false) when the return type is not an object reference,
// the return length is zero, or the call produced a nil reference.
// Otherwise it retains the object's handle on the caller's behalf before
// returning it, so the reference outlives Close of this Invocation. The
// generic call path does not hand its own reference to the caller; this
// retain balances the difference against an ordinary direct call.
func (inv *Invocation) ReturnedObject() (any, bool) {
	if !inv.ReturnsObject() || inv.ReturnLength() == 0 {
		return nil, false
	}

	h := object.Handle(inv.frame.ReadReturn())
	if h == 0 {
		return nil, false
	}

	v, ok := inv.objects.Get(h)
	if !ok {
		return nil, false
	}
	inv.objects.Retain(h)
	inv.log.Debug("invocation: returned object retained", zap.Uint32("handle", uint32(h)))
	return v, true
}

// Objects returns the table holding the Invocation's object references.
func (inv *Invocation) Objects() *object.Table {
	return inv.objects
}

// Close releases every frame-owned object reference. Safe on inert
// Invocations; later calls are no-ops. Retained returned objects survive.
func (inv *Invocation) Close() error {
	if inv.closed {
		return nil
	}
	inv.closed = true

	for _, h := range inv.owned {
		inv.objects.Release(h)
	}
	inv.owned = nil
	return nil
}

func (inv *Invocation) disown(h object.Handle) {
	for i, o := range inv.owned {
		if o == h {
			inv.owned = append(inv.owned[:i], inv.owned[i+1:]...)
			return
		}
	}
}

// decodeSlot turns a frame word back into a reflect value of type t.
// Slot kinds and Go types correspond by construction; a width mismatch
// from a contract-violating SetArgument yields the truncated bits.
func (inv *Invocation) decodeSlot(word uint64, kind signature.Kind, t reflect.Type) reflect.Value {
	if kind.Indirect() {
		v, ok := inv.objects.Get(object.Handle(word))
		if !ok {
			return reflect.Zero(t)
		}
		rv := reflect.ValueOf(v)
		if rv.Type() == t || rv.Type().AssignableTo(t) {
			return rv
		}
		if rv.Type().ConvertibleTo(t) {
			return rv.Convert(t)
		}
		inv.log.Debug("invocation: stored object does not fit the slot",
			zap.Error(errors.TypeMismatch(errors.PhaseInvoke, rv.Type().String(), t.String())))
		return reflect.Zero(t)
	}

	pv := reflect.New(t).Elem()
	switch kind {
	case signature.KindBool:
		pv.SetBool(word != 0)
	case signature.KindInt8:
		pv.SetInt(int64(int8(word)))
	case signature.KindInt16:
		pv.SetInt(int64(int16(word)))
	case signature.KindInt32:
		pv.SetInt(int64(int32(word)))
	case signature.KindInt64:
		pv.SetInt(int64(word))
	case signature.KindUint8, signature.KindUint16, signature.KindUint32, signature.KindUint64:
		pv.SetUint(word)
	case signature.KindFloat32:
		pv.SetFloat(float64(math.Float32frombits(uint32(word))))
	case signature.KindFloat64:
		pv.SetFloat(math.Float64frombits(word))
	}
	return pv
}

// encodeResult turns a call result into the frame's return word.
func (inv *Invocation) encodeResult(rv reflect.Value, kind signature.Kind) uint64 {
	if kind.Indirect() {
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			if rv.IsNil() {
				return 0
			}
		}
		h := inv.objects.Insert(rv.Interface())
		inv.owned = append(inv.owned, h)
		return uint64(h)
	}
	return scalarWord(rv, kind)
}

// scalarWord coerces a caller value into a slot word for a scalar kind.
// Mismatched representations are a caller contract violation; the
// coercion is best effort and never panics.
func scalarWord(rv reflect.Value, kind signature.Kind) uint64 {
	switch kind {
	case signature.KindBool:
		if rv.Kind() == reflect.Bool && rv.Bool() {
			return 1
		}
		return 0
	case signature.KindFloat32:
		return uint64(math.Float32bits(float32(floatOf(rv))))
	case signature.KindFloat64:
		return math.Float64bits(floatOf(rv))
	default:
		return intWordOf(rv)
	}
}

func floatOf(rv reflect.Value) float64 {
	switch {
	case rv.CanFloat():
		return rv.Float()
	case rv.CanInt():
		return float64(rv.Int())
	case rv.CanUint():
		return float64(rv.Uint())
	}
	return 0
}

func intWordOf(rv reflect.Value) uint64 {
	switch {
	case rv.CanInt():
		return uint64(rv.Int())
	case rv.CanUint():
		return rv.Uint()
	case rv.CanFloat():
		return uint64(int64(rv.Float()))
	case rv.Kind() == reflect.Bool:
		if rv.Bool() {
			return 1
		}
	}
	return 0
}
