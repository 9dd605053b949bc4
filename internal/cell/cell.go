// Package cell provides a mutable cell with runtime-checked borrows.
//
// A Cell holds storage that may be reached through any number of aliases.
// Evaluation is single-threaded, so a Cell does no locking; instead it counts
// outstanding borrows and refuses an exclusive borrow while any shared borrow
// is live, and any borrow at all while an exclusive borrow is live. This is
// what lets a mutation through one alias fail loudly when another alias is in
// the middle of iterating over the same storage.
package cell

import "errors"

// ErrBorrowed is returned by BorrowMut when a shared borrow is outstanding.
var ErrBorrowed = errors.New("already borrowed")

// ErrMutBorrowed is returned by Borrow and BorrowMut when an exclusive borrow
// is outstanding.
var ErrMutBorrowed = errors.New("already mutably borrowed")

// Cell is a mutable cell. The zero value holds the zero value of T and has no
// outstanding borrows.
type Cell[T any] struct {
	v       T
	readers int
	writer  bool
}

// New creates a cell holding v.
func New[T any](v T) *Cell[T] {
	return &Cell[T]{v: v}
}

// Borrow acquires a shared borrow. The returned function releases it and must
// be called exactly once; extra calls are ignored.
func (c *Cell[T]) Borrow() (T, func(), error) {
	if c.writer {
		var zero T
		return zero, nil, ErrMutBorrowed
	}
	c.readers++
	done := false
	return c.v, func() {
		if !done {
			done = true
			c.readers--
		}
	}, nil
}

// BorrowMut acquires an exclusive borrow. The pointer is valid until the
// returned release function is called.
func (c *Cell[T]) BorrowMut() (*T, func(), error) {
	if c.writer {
		return nil, nil, ErrMutBorrowed
	}
	if c.readers > 0 {
		return nil, nil, ErrBorrowed
	}
	c.writer = true
	done := false
	return &c.v, func() {
		if !done {
			done = true
			c.writer = false
		}
	}, nil
}

// Get returns the current value without borrowing. It is for callers that do
// not hand control to anything that could mutate the cell before they are done
// with the result.
func (c *Cell[T]) Get() T {
	return c.v
}

// Borrowed reports whether any borrow is outstanding.
func (c *Cell[T]) Borrowed() bool {
	return c.writer || c.readers > 0
}
