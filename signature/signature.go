package signature

import (
	"reflect"

	"github.com/mman/dynamic/errors"
	"github.com/mman/dynamic/selector"
)

// ImplicitArgs is the number of leading slots the calling convention
// reserves: the receiver and the selector. User arguments start at slot 2.
const ImplicitArgs = 2

// Signature is the resolved calling shape of one method on one target
// type: ordered argument descriptors (including the implicit leading
// slots), the return descriptor, and the reflect.Method used to perform
// the call. Immutable after resolution.
type Signature struct {
	target reflect.Type
	sel    *selector.Selector
	method reflect.Method
	args   []Kind
	ret    Kind
}

// resolve derives a Signature from runtime metadata. Pure lookup; no call
// is performed. Fails with method_not_found when the target's type does
// not implement the selector at its declared arity, or when the method's
// shape cannot be expressed (variadic, multiple results).
func resolve(target reflect.Type, sel *selector.Selector) (*Signature, error) {
	if target == nil {
		return nil, errors.MethodNotFound(errors.PhaseResolve, "<nil>", sel.String())
	}

	method, ok := target.MethodByName(sel.GoName())
	if !ok {
		method, ok = target.MethodByName(sel.Base())
	}
	if !ok {
		return nil, errors.MethodNotFound(errors.PhaseResolve, target.String(), sel.String())
	}

	mt := method.Type
	if mt.IsVariadic() {
		return nil, errors.New(errors.PhaseResolve, errors.KindMethodNotFound).
			GoType(target.String()).
			Selector(sel.String()).
			Detail("variadic methods are not supported").
			Build()
	}

	// mt.In(0) is the receiver.
	if mt.NumIn()-1 != sel.NumArgs() {
		return nil, errors.New(errors.PhaseResolve, errors.KindMethodNotFound).
			GoType(target.String()).
			Selector(sel.String()).
			Detail("selector declares %d arguments, method takes %d", sel.NumArgs(), mt.NumIn()-1).
			Build()
	}

	if mt.NumOut() > 1 {
		return nil, errors.New(errors.PhaseResolve, errors.KindMethodNotFound).
			GoType(target.String()).
			Selector(sel.String()).
			Detail("methods with %d results are not supported", mt.NumOut()).
			Build()
	}

	args := make([]Kind, 0, mt.NumIn()+1)
	args = append(args, KindObject, KindSelector)
	for i := 1; i < mt.NumIn(); i++ {
		args = append(args, kindOf(mt.In(i)))
	}

	ret := KindVoid
	if mt.NumOut() == 1 {
		ret = kindOf(mt.Out(0))
	}

	return &Signature{
		target: target,
		sel:    sel,
		method: method,
		args:   args,
		ret:    ret,
	}, nil
}

// NumArguments returns the total slot count, implicit slots included.
func (s *Signature) NumArguments() int {
	return len(s.args)
}

// ArgumentType returns the descriptor of slot i (0 = receiver,
// 1 = selector, user arguments from 2).
func (s *Signature) ArgumentType(i int) Kind {
	return s.args[i]
}

// ReturnType returns the return descriptor; KindVoid for void methods.
func (s *Signature) ReturnType() Kind {
	return s.ret
}

// ReturnLength returns the return slot size in bytes; 0 for void.
func (s *Signature) ReturnLength() int {
	return s.ret.Size()
}

// Method returns the resolved reflect method.
func (s *Signature) Method() reflect.Method {
	return s.method
}

// TargetType returns the type the signature was resolved against.
func (s *Signature) TargetType() reflect.Type {
	return s.target
}

// Selector returns the method identifier the signature was resolved for.
func (s *Signature) Selector() *selector.Selector {
	return s.sel
}
