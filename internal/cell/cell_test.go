package cell_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/pyrt/internal/cell"
)

// TestBorrowShared tests that any number of shared borrows may coexist.
func TestBorrowShared(t *testing.T) {
	c := cell.New([]int{1, 2, 3})
	a, ra, err := c.Borrow()
	if err != nil {
		t.Fatalf("first borrow failed: %v", err)
	}
	b, rb, err := c.Borrow()
	if err != nil {
		t.Fatalf("second borrow failed: %v", err)
	}
	if len(a) != 3 || len(b) != 3 {
		t.Errorf("wrong values: have %v and %v", a, b)
	}
	ra()
	if !c.Borrowed() {
		t.Error("cell not borrowed after releasing one of two borrows")
	}
	rb()
	if c.Borrowed() {
		t.Error("cell still borrowed after releasing all borrows")
	}
}

// TestBorrowMutExclusive tests that exclusive borrows conflict with every
// other borrow and that releases are idempotent.
func TestBorrowMutExclusive(t *testing.T) {
	c := cell.New(0)
	_, r, _ := c.Borrow()
	if _, _, err := c.BorrowMut(); !errors.Is(err, cell.ErrBorrowed) {
		t.Errorf("mutable borrow during shared borrow: have %v, want %v", err, cell.ErrBorrowed)
	}
	r()
	r() // extra release must not underflow
	p, rm, err := c.BorrowMut()
	if err != nil {
		t.Fatalf("mutable borrow after release failed: %v", err)
	}
	*p = 7
	if _, _, err := c.Borrow(); !errors.Is(err, cell.ErrMutBorrowed) {
		t.Errorf("shared borrow during mutable borrow: have %v, want %v", err, cell.ErrMutBorrowed)
	}
	if _, _, err := c.BorrowMut(); !errors.Is(err, cell.ErrMutBorrowed) {
		t.Errorf("second mutable borrow: have %v, want %v", err, cell.ErrMutBorrowed)
	}
	rm()
	if v := c.Get(); v != 7 {
		t.Errorf("wrong value after mutation: have %d, want 7", v)
	}
	if c.Borrowed() {
		t.Error("cell still borrowed after release")
	}
}
