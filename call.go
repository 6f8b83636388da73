package dynamic

import (
	"github.com/mman/dynamic/errors"
	"github.com/mman/dynamic/selector"
)

// Call is the one-line convenience over the Invocation lifecycle: it
// resolves spelling against target, marshals args in order (the first
// element lands at argument index 1), fires the call, and returns the
// decoded result. The result is nil for void methods.
//
// Unlike raw SetArgument, which silently ignores out-of-range indexes,
// Call refuses to fire with the wrong number of arguments: every user
// slot of the frame must be accounted for.
func Call(target any, spelling string, args ...any) (any, error) {
	sel := selector.Sel(spelling)
	inv, err := NewInvocation(target, sel)
	if err != nil {
		return nil, err
	}
	defer inv.Close()

	if len(args) != sel.NumArgs() {
		return nil, errors.New(errors.PhaseFrame, errors.KindInvalidInput).
			Selector(sel.String()).
			Detail("selector takes %d argument(s), got %d", sel.NumArgs(), len(args)).
			Build()
	}

	for i, arg := range args {
		inv.SetArgument(arg, i+1)
	}
	inv.Invoke()

	result, _ := inv.ReturnValue()
	return result, nil
}
