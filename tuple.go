package pyrt

// Tuple is an immutable sequence. Tuples are values: Clone gives the copy
// its own element sequence, although List and Object elements still alias.
type Tuple struct {
	elems []Value
}

func (Tuple) Kind() Kind { return KindTuple }
func (Tuple) isValue()   {}

// NewTuple creates a Tuple holding a copy of elems.
func NewTuple(elems ...Value) Tuple {
	if len(elems) == 0 {
		return Tuple{}
	}
	return Tuple{elems: append([]Value(nil), elems...)}
}

// Len returns the number of elements.
func (t Tuple) Len() int {
	return len(t.elems)
}

// Items returns a copy of the elements.
func (t Tuple) Items() []Value {
	return append([]Value(nil), t.elems...)
}

// At returns the element at i. Negative indices count from the end.
func (t Tuple) At(i int) (Value, error) {
	k, ok := adjustIndex(i, len(t.elems))
	if !ok {
		return nil, NewException(IndexError, "tuple index out of range")
	}
	return t.elems[k], nil
}

// callTuple dispatches a Tuple method.
func callTuple(t Tuple, attr string, args []Value, kwargs Kwargs) (Value, error) {
	switch attr {
	case "count", "index":
	default:
		return nil, attributeError(t, attr)
	}
	if len(kwargs) != 0 {
		return nil, typeErrorf("%s() takes no keyword arguments", attr)
	}
	if len(args) != 1 {
		return nil, arityErrorf("%s() takes exactly one argument (%d given)", attr, len(args))
	}
	if attr == "count" {
		n, err := countElem(t.elems, args[0])
		if err != nil {
			return nil, err
		}
		return Int(int64(n)), nil
	}
	i, ok, err := findElem(t.elems, args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewException(ValueError, "tuple.index(x): x not in tuple")
	}
	return Int(int64(i)), nil
}
