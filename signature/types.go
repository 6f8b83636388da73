package signature

import (
	"reflect"
)

// Kind is a single-character type descriptor naming a slot's primitive
// category. The code determines the slot's storage size and whether the
// value is stored indirectly as an object table handle.
type Kind byte

const (
	KindVoid     Kind = 'v'
	KindBool     Kind = 'B'
	KindInt8     Kind = 'c'
	KindInt16    Kind = 's'
	KindInt32    Kind = 'i'
	KindInt64    Kind = 'q'
	KindUint8    Kind = 'C'
	KindUint16   Kind = 'S'
	KindUint32   Kind = 'I'
	KindUint64   Kind = 'Q'
	KindFloat32  Kind = 'f'
	KindFloat64  Kind = 'd'
	KindString   Kind = '*'
	KindObject   Kind = '@'
	KindSelector Kind = ':'
)

// handleSize is the storage size of indirect slots (object table handles
// and selector ids).
const handleSize = 4

// Size returns the slot storage size in bytes. Void is 0.
func (k Kind) Size() int {
	switch k {
	case KindVoid:
		return 0
	case KindBool, KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	case KindString, KindObject, KindSelector:
		return handleSize
	default:
		return 0
	}
}

// IsObject reports whether the descriptor names an object reference.
func (k Kind) IsObject() bool {
	return k == KindObject
}

// Indirect reports whether the slot stores a table handle rather than the
// value itself.
func (k Kind) Indirect() bool {
	return k == KindString || k == KindObject
}

// String returns the descriptor code as a string.
func (k Kind) String() string {
	return string(rune(k))
}

// kindOf maps a Go type to its descriptor. Scalars map to sized numeric
// codes; strings and every reference-like type go through the object table.
func kindOf(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int, reflect.Int64:
		return KindInt64
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	case reflect.String:
		return KindString
	default:
		return KindObject
	}
}
