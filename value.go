package pyrt

import (
	"fmt"
	"sync/atomic"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindNumber
	KindStr
	KindBool
	KindNone
	KindList
	KindTuple
	KindClass
	KindObject
	KindFunction
	KindTextIOWrapper
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNumber:
		return "number"
	case KindStr:
		return "str"
	case KindBool:
		return "bool"
	case KindNone:
		return "none"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindClass:
		return "class"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	case KindTextIOWrapper:
		return "textiowrapper"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is a runtime datum. The set of implementations is closed: Number,
// Str, Bool, NoneType, *List, Tuple, *Class, *Object, *Function,
// *TextIOWrapper, and the Undefined sentinel.
//
// Copying a Value copies the handle. For *List and *Object that means the
// copy aliases the same backing storage; use Clone to get the modeled
// language's copy semantics for every variant.
type Value interface {
	Kind() Kind
	isValue()
}

// Str is a string value. Indexing and length count code points.
type Str string

func (Str) Kind() Kind { return KindStr }
func (Str) isValue()   {}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) isValue()   {}

// True and False are the two Bool values.
const (
	True  Bool = true
	False Bool = false
)

// NoneType is the type of None.
type NoneType struct{}

func (NoneType) Kind() Kind { return KindNone }
func (NoneType) isValue()   {}

// None is the absence of a value.
var None NoneType

type undefined struct{}

func (undefined) Kind() Kind { return KindUndefined }
func (undefined) isValue()   {}

// Undefined marks a slot that has not been initialized. It never appears as
// the result of a successful lookup.
var Undefined Value = undefined{}

// Clone copies v with the modeled language's semantics: a List or Object
// clone is a new handle to the same storage, a Tuple clone owns a new element
// sequence, and everything else is immutable and returned as is.
func Clone(v Value) Value {
	if t, ok := v.(Tuple); ok {
		return NewTuple(t.Items()...)
	}
	return v
}

// TypeName returns the modeled language's name for the type of v, as it
// appears in error messages.
func TypeName(v Value) string {
	switch v := v.(type) {
	case Number:
		if v.IsFloat() {
			return "float"
		}
		return "int"
	case Str:
		return "str"
	case Bool:
		return "bool"
	case NoneType:
		return "NoneType"
	case *List:
		return "list"
	case Tuple:
		return "tuple"
	case *Class:
		if v.IsModule() {
			return "module"
		}
		return "type"
	case *Object:
		return v.class.Name()
	case *Function:
		return "builtin_function_or_method"
	case *TextIOWrapper:
		return "_io.TextIOWrapper"
	case nil:
		return "nil"
	default:
		return "undefined"
	}
}

// Truth converts v to a boolean. Containers are true iff they are non-empty,
// numbers iff non-zero. Classes, objects, functions, and streams have no
// truth value.
func Truth(v Value) (bool, error) {
	switch v := v.(type) {
	case Number:
		if v.IsFloat() {
			return v.f != 0, nil
		}
		return v.i != 0, nil
	case Str:
		return v != "", nil
	case Bool:
		return bool(v), nil
	case NoneType:
		return false, nil
	case *List:
		return v.Len() != 0, nil
	case Tuple:
		return len(v.elems) != 0, nil
	default:
		return false, NewExceptionf(TypeError, "'%s' object cannot be converted to bool", TypeName(v))
	}
}

var idcounter uintptr

// nextID returns a fresh identity for a class or stream.
func nextID() uintptr {
	return atomic.AddUintptr(&idcounter, 1)
}
