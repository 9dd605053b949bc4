package pyrt

import (
	"sort"
	"strings"

	"github.com/zephyrtronium/contains"
	"github.com/zephyrtronium/pyrt/internal/cell"
)

// ModuleSlot is the slot that marks a class as a module. A class whose
// ModuleSlot holds True dispatches calls on its instances without an implicit
// receiver.
const ModuleSlot = "__module__"

// NameSlot holds a module's name.
const NameSlot = "__name__"

// InitSlot is the initializer invoked by Runtime.Call when a class is called.
const InitSlot = "__init__"

// Schema is the immutable map from attribute names to slot positions shared
// by a class and all its instances.
type Schema struct {
	name  string
	index map[string]int
	names []string
}

// NewSchema creates a schema with the given slots in order. Slot names must be
// unique.
func NewSchema(name string, slots ...string) (*Schema, error) {
	s := &Schema{
		name:  name,
		index: make(map[string]int, len(slots)),
		names: make([]string, len(slots)),
	}
	for i, n := range slots {
		if _, ok := s.index[n]; ok {
			return nil, NewExceptionf(ValueError, "duplicate slot '%s' in class '%s'", n, name)
		}
		s.index[n] = i
		s.names[i] = n
	}
	return s, nil
}

// Name returns the name of the class the schema describes.
func (s *Schema) Name() string {
	return s.name
}

// Len returns the number of slots.
func (s *Schema) Len() int {
	return len(s.names)
}

// Slot returns the position of the named slot.
func (s *Schema) Slot(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Names returns the slot names in slot order.
func (s *Schema) Names() []string {
	return append([]string(nil), s.names...)
}

// Class is a schema together with the class's own member values, one per
// slot. Its members are fixed at creation; instances copy them.
type Class struct {
	schema  *Schema
	bases   []*Class
	members []Value
	id      uintptr
}

func (*Class) Kind() Kind { return KindClass }
func (*Class) isValue()   {}

// NewClass creates a class. Its slots are, in order, the slots of its
// ancestors (depth-first, left to right, each class once), then the names in
// members not already present in sorted order, then the extra instance slots
// not already present. A slot takes its value from members, else from the
// first ancestor that defines it, else Undefined.
func NewClass(name string, bases []*Class, members map[string]Value, slots ...string) (*Class, error) {
	c := &Class{
		bases: append([]*Class(nil), bases...),
		id:    nextID(),
	}
	anc := c.ancestors()
	var names []string
	seen := make(map[string]bool)
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for _, a := range anc {
		for _, n := range a.schema.names {
			add(n)
		}
	}
	own := make([]string, 0, len(members))
	for n := range members {
		own = append(own, n)
	}
	sort.Strings(own)
	for _, n := range own {
		add(n)
	}
	for _, n := range slots {
		add(n)
	}
	schema, err := NewSchema(name, names...)
	if err != nil {
		return nil, err
	}
	c.schema = schema
	c.members = make([]Value, len(names))
	for i, n := range names {
		if v, ok := members[n]; ok {
			c.members[i] = v
			continue
		}
		c.members[i] = Undefined
		for _, a := range anc {
			if v, ok := a.lookup(n); ok {
				c.members[i] = v
				break
			}
		}
	}
	return c, nil
}

// NewModule creates a module: a class whose ModuleSlot is True and whose
// NameSlot holds name.
func NewModule(name string, members map[string]Value) (*Class, error) {
	m := make(map[string]Value, len(members)+2)
	for k, v := range members {
		m[k] = v
	}
	m[NameSlot] = Str(name)
	m[ModuleSlot] = True
	return NewClass(name, nil, m)
}

// ancestors returns c's proper ancestors in depth-first, left-to-right order,
// visiting each class once even when the base graph is a diamond.
func (c *Class) ancestors() []*Class {
	var r []*Class
	set := contains.Set{}
	set.Add(c.id)
	var visit func(b *Class)
	visit = func(b *Class) {
		if !set.Add(b.id) {
			return
		}
		r = append(r, b)
		for _, p := range b.bases {
			visit(p)
		}
	}
	for _, b := range c.bases {
		visit(b)
	}
	return r
}

// lookup returns the class's defined value for a slot.
func (c *Class) lookup(name string) (Value, bool) {
	i, ok := c.schema.index[name]
	if !ok || c.members[i] == Undefined {
		return nil, false
	}
	return c.members[i], true
}

// Name returns the class's name.
func (c *Class) Name() string {
	return c.schema.name
}

// Schema returns the class's shared schema.
func (c *Class) Schema() *Schema {
	return c.schema
}

// Bases returns the class's direct bases.
func (c *Class) Bases() []*Class {
	return append([]*Class(nil), c.bases...)
}

// IsModule reports whether the class is marked as a module.
func (c *Class) IsModule() bool {
	v, ok := c.lookup(ModuleSlot)
	if !ok {
		return false
	}
	b, ok := v.(Bool)
	return ok && bool(b)
}

// ModuleName returns the value of the NameSlot, or the class name if that slot
// is not a Str.
func (c *Class) ModuleName() string {
	if v, ok := c.lookup(NameSlot); ok {
		if s, ok := v.(Str); ok {
			return string(s)
		}
	}
	return c.schema.name
}

// Get returns the class-level value of attr.
func (c *Class) Get(attr string) (Value, error) {
	v, ok := c.lookup(attr)
	if !ok {
		return nil, attributeError(c, attr)
	}
	return v, nil
}

// IsSubclass reports whether c is other or has other as an ancestor.
func (c *Class) IsSubclass(other *Class) bool {
	if c == other {
		return true
	}
	for _, a := range c.ancestors() {
		if a == other {
			return true
		}
	}
	return false
}

// New creates an instance whose members are copies of the class's members.
func (c *Class) New() *Object {
	o := &Object{class: c}
	p, release, _ := o.members.BorrowMut()
	*p = append([]Value(nil), c.members...)
	release()
	return o
}

// Object is an instance of a class. An *Object is a handle: every copy of the
// pointer aliases the same member storage.
type Object struct {
	class   *Class
	members cell.Cell[[]Value]
}

func (*Object) Kind() Kind { return KindObject }
func (*Object) isValue()   {}

// Class returns the object's class.
func (o *Object) Class() *Class {
	return o.class
}

// IsInstance reports whether o's class is c or a subclass of c.
func (o *Object) IsInstance(c *Class) bool {
	return o.class.IsSubclass(c)
}

// Get returns the value of attr. Slots that were never assigned are missing.
func (o *Object) Get(attr string) (Value, error) {
	i, ok := o.class.schema.index[attr]
	if !ok {
		return nil, attributeError(o, attr)
	}
	members, release, err := o.members.Borrow()
	if err != nil {
		return nil, borrowErr("object", err)
	}
	v := members[i]
	release()
	if v == Undefined {
		return nil, attributeError(o, attr)
	}
	return v, nil
}

// Set assigns attr. The attribute must be a slot of the object's class.
func (o *Object) Set(attr string, v Value) error {
	i, ok := o.class.schema.index[attr]
	if !ok {
		return attributeError(o, attr)
	}
	p, release, err := o.members.BorrowMut()
	if err != nil {
		return borrowErr("object", err)
	}
	(*p)[i] = v
	release()
	return nil
}

// AttrAssign sets dest.attr = src. Only Objects accept attribute assignment,
// and only for slots in their class's schema.
func AttrAssign(dest Value, attr string, src Value) error {
	o, ok := dest.(*Object)
	if !ok {
		return NewExceptionf(AttributeError, "cannot set attribute '%s' on '%s'", attr, TypeName(dest))
	}
	return o.Set(attr, src)
}

// ImportName is one name imported from a module, with its local alias.
type ImportName struct {
	Name  string
	Alias string
}

// ImportNames destructures a Class or Object into bindings. With no names,
// every defined slot not starting with an underscore is bound under its own
// name.
func ImportNames(v Value, names ...ImportName) (map[string]Value, error) {
	var get func(string) (Value, error)
	var schema *Schema
	switch v := v.(type) {
	case *Class:
		get, schema = v.Get, v.schema
	case *Object:
		get, schema = v.Get, v.class.schema
	default:
		return nil, typeErrorf("cannot import names from '%s'", TypeName(v))
	}
	r := make(map[string]Value)
	if len(names) == 0 {
		for _, n := range schema.names {
			if strings.HasPrefix(n, "_") {
				continue
			}
			if x, err := get(n); err == nil {
				r[n] = x
			}
		}
		return r, nil
	}
	for _, n := range names {
		x, err := get(n.Name)
		if err != nil {
			return nil, NewExceptionf(NameError, "cannot import name '%s' from '%s'", n.Name, schema.name)
		}
		alias := n.Alias
		if alias == "" {
			alias = n.Name
		}
		r[alias] = x
	}
	return r, nil
}
