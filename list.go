package pyrt

import (
	"errors"

	"github.com/zephyrtronium/pyrt/internal/cell"
)

// List is a mutable sequence. A *List is a handle: every copy of the pointer
// is an alias of the same backing storage.
type List struct {
	items cell.Cell[[]Value]
}

func (*List) Kind() Kind { return KindList }
func (*List) isValue()   {}

// NewList creates a List holding items. The List takes ownership of the
// slice.
func NewList(items ...Value) *List {
	l := &List{}
	p, release, _ := l.items.BorrowMut()
	*p = items
	release()
	return l
}

// borrowErr converts a cell borrow failure into a RuntimeError.
func borrowErr(what string, err error) error {
	switch {
	case errors.Is(err, cell.ErrBorrowed):
		return &Exception{Kind: RuntimeError, Msg: what + " modified during iteration", Err: err}
	case errors.Is(err, cell.ErrMutBorrowed):
		return &Exception{Kind: RuntimeError, Msg: what + " accessed during modification", Err: err}
	}
	return err
}

// borrow takes a shared borrow of the list's elements.
func (l *List) borrow() ([]Value, func(), error) {
	items, release, err := l.items.Borrow()
	if err != nil {
		return nil, nil, borrowErr("list", err)
	}
	return items, release, nil
}

// mutate runs f with an exclusive borrow of the list's elements.
func (l *List) mutate(f func(items *[]Value) error) error {
	p, release, err := l.items.BorrowMut()
	if err != nil {
		return borrowErr("list", err)
	}
	defer release()
	return f(p)
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.items.Get())
}

// Items returns a copy of the elements.
func (l *List) Items() []Value {
	items := l.items.Get()
	r := make([]Value, len(items))
	copy(r, items)
	return r
}

// At returns the element at i. Negative indices count from the end.
func (l *List) At(i int) (Value, error) {
	items := l.items.Get()
	k, ok := adjustIndex(i, len(items))
	if !ok {
		return nil, NewException(IndexError, "list index out of range")
	}
	return items[k], nil
}

// SetAt replaces the element at i.
func (l *List) SetAt(i int, v Value) error {
	return l.mutate(func(items *[]Value) error {
		k, ok := adjustIndex(i, len(*items))
		if !ok {
			return NewException(IndexError, "list assignment index out of range")
		}
		(*items)[k] = v
		return nil
	})
}

// Append adds v to the end of the list.
func (l *List) Append(v Value) error {
	return l.mutate(func(items *[]Value) error {
		*items = append(*items, v)
		return nil
	})
}

// Iter calls fn with each element while holding a shared borrow. Any attempt
// to mutate the list from fn fails.
func (l *List) Iter(fn func(i int, v Value) error) error {
	items, release, err := l.borrow()
	if err != nil {
		return err
	}
	defer release()
	for i, v := range items {
		if err := fn(i, v); err != nil {
			return err
		}
	}
	return nil
}

type listMethod func(l *List, args []Value) (Value, error)

// listMethods is the method set of List.
var listMethods map[string]listMethod

func init() {
	listMethods = map[string]listMethod{
		"append":       listAppend,
		"copy":         listCopy,
		"count":        listCount,
		"extend":       listExtend,
		"index":        listIndex,
		"insert":       listInsert,
		"pop":          listPop,
		"reverse":      listReverse,
		"__contains__": listContains,
		"__getitem__":  listGetItem,
		"__len__":      listLen,
	}
}

// callList dispatches a List method.
func callList(l *List, attr string, args []Value, kwargs Kwargs) (Value, error) {
	m, ok := listMethods[attr]
	if !ok {
		return nil, attributeError(l, attr)
	}
	if len(kwargs) != 0 {
		return nil, typeErrorf("%s() takes no keyword arguments", attr)
	}
	return m(l, args)
}

// listAppend is a List method.
//
// append adds its single argument to the end of the list.
func listAppend(l *List, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityErrorf("append() takes exactly one argument (%d given)", len(args))
	}
	return None, l.Append(args[0])
}

// listCopy is a List method.
//
// copy returns a shallow copy of the list with its own storage.
func listCopy(l *List, args []Value) (Value, error) {
	if len(args) != 0 {
		return nil, arityErrorf("copy() takes no arguments (%d given)", len(args))
	}
	items, release, err := l.borrow()
	if err != nil {
		return nil, err
	}
	defer release()
	return NewList(append([]Value(nil), items...)...), nil
}

// listCount is a List method.
//
// count returns the number of elements equal to the argument.
func listCount(l *List, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityErrorf("count() takes exactly one argument (%d given)", len(args))
	}
	items, release, err := l.borrow()
	if err != nil {
		return nil, err
	}
	defer release()
	n, err := countElem(items, args[0])
	if err != nil {
		return nil, err
	}
	return Int(int64(n)), nil
}

// listExtend is a List method.
//
// extend appends every element of an iterable. Extending a list with itself
// doubles it.
func listExtend(l *List, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityErrorf("extend() takes exactly one argument (%d given)", len(args))
	}
	vs, err := collect(args[0])
	if err != nil {
		return nil, err
	}
	return None, l.mutate(func(items *[]Value) error {
		*items = append(*items, vs...)
		return nil
	})
}

// listIndex is a List method.
//
// index returns the position of the first element equal to the argument.
func listIndex(l *List, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityErrorf("index() takes exactly one argument (%d given)", len(args))
	}
	items, release, err := l.borrow()
	if err != nil {
		return nil, err
	}
	defer release()
	i, ok, err := findElem(items, args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewExceptionf(ValueError, "%s is not in list", Repr(args[0]))
	}
	return Int(int64(i)), nil
}

// listInsert is a List method.
//
// insert(i, x) inserts x before position i. Positions past either end are
// clamped.
func listInsert(l *List, args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, arityErrorf("insert expected 2 arguments, got %d", len(args))
	}
	i, err := indexArg("list", args[0])
	if err != nil {
		return nil, err
	}
	return None, l.mutate(func(items *[]Value) error {
		n := len(*items)
		if i < 0 {
			i += n
			if i < 0 {
				i = 0
			}
		}
		if i > n {
			i = n
		}
		*items = append(*items, nil)
		copy((*items)[i+1:], (*items)[i:])
		(*items)[i] = args[1]
		return nil
	})
}

// listPop is a List method.
//
// pop removes and returns the element at the given position, by default the
// last.
func listPop(l *List, args []Value) (Value, error) {
	if len(args) > 1 {
		return nil, arityErrorf("pop expected at most 1 argument, got %d", len(args))
	}
	i := -1
	if len(args) == 1 {
		var err error
		if i, err = indexArg("list", args[0]); err != nil {
			return nil, err
		}
	}
	var r Value
	err := l.mutate(func(items *[]Value) error {
		if len(*items) == 0 {
			return NewException(IndexError, "pop from empty list")
		}
		k, ok := adjustIndex(i, len(*items))
		if !ok {
			return NewException(IndexError, "pop index out of range")
		}
		r = (*items)[k]
		*items = append((*items)[:k], (*items)[k+1:]...)
		return nil
	})
	return r, err
}

// listReverse is a List method.
//
// reverse reverses the list in place.
func listReverse(l *List, args []Value) (Value, error) {
	if len(args) != 0 {
		return nil, arityErrorf("reverse() takes no arguments (%d given)", len(args))
	}
	return None, l.mutate(func(items *[]Value) error {
		s := *items
		for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
			s[i], s[j] = s[j], s[i]
		}
		return nil
	})
}

// listContains is a List method.
func listContains(l *List, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityErrorf("__contains__() takes exactly one argument (%d given)", len(args))
	}
	ok, err := Contains(l, args[0])
	return Bool(ok), err
}

// listGetItem is a List method.
func listGetItem(l *List, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityErrorf("__getitem__() takes exactly one argument (%d given)", len(args))
	}
	return Index(l, args[0])
}

// listLen is a List method.
func listLen(l *List, args []Value) (Value, error) {
	if len(args) != 0 {
		return nil, arityErrorf("__len__() takes no arguments (%d given)", len(args))
	}
	return Int(int64(l.Len())), nil
}
