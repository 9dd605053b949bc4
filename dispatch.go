package pyrt

// attributeError creates the AttributeError for a missing attr on v.
func attributeError(v Value, attr string) error {
	if c, ok := v.(*Class); ok {
		if c.IsModule() {
			return NewExceptionf(AttributeError, "module '%s' has no attribute '%s'", c.ModuleName(), attr)
		}
		return NewExceptionf(AttributeError, "type object '%s' has no attribute '%s'", c.Name(), attr)
	}
	if o, ok := v.(*Object); ok && o.class.IsModule() {
		return NewExceptionf(AttributeError, "module '%s' has no attribute '%s'", o.class.ModuleName(), attr)
	}
	return NewExceptionf(AttributeError, "'%s' object has no attribute '%s'", TypeName(v), attr)
}

// CallMember calls the method attr of v. Methods of strings, lists, tuples,
// and streams are native. A Class member is called without a receiver. An
// Object member is called with the object prepended to args, unless the
// object's class is a module.
func (rt *Runtime) CallMember(v Value, attr string, args []Value, kwargs Kwargs) (Value, error) {
	rt.log.Trace().Str("type", TypeName(v)).Str("attr", attr).Int("args", len(args)).Msg("call member")
	switch v := v.(type) {
	case Str:
		return callStr(v, attr, args, kwargs)
	case *List:
		return callList(v, attr, args, kwargs)
	case Tuple:
		return callTuple(v, attr, args, kwargs)
	case *TextIOWrapper:
		return callIOWrapper(v, attr, args, kwargs)
	case *Class:
		m, err := v.Get(attr)
		if err != nil {
			return nil, err
		}
		return rt.Call(m, args, kwargs)
	case *Object:
		m, err := v.Get(attr)
		if err != nil {
			return nil, err
		}
		if v.class.IsModule() {
			return rt.Call(m, args, kwargs)
		}
		a := make([]Value, 0, len(args)+1)
		a = append(a, v)
		a = append(a, args...)
		return rt.Call(m, a, kwargs)
	}
	return nil, attributeError(v, attr)
}

// GetAttr reads the attribute attr of v.
func (rt *Runtime) GetAttr(v Value, attr string) (Value, error) {
	switch v := v.(type) {
	case *Class:
		return v.Get(attr)
	case *Object:
		return v.Get(attr)
	case *TextIOWrapper:
		return ioWrapperAttr(v, attr)
	}
	return nil, attributeError(v, attr)
}

// Call calls v. Calling a Class creates an instance and runs its __init__,
// if it has one, with the instance as receiver.
func (rt *Runtime) Call(v Value, args []Value, kwargs Kwargs) (Value, error) {
	switch f := v.(type) {
	case *Function:
		rt.log.Trace().Str("func", f.name).Int("args", len(args)).Msg("call")
		return f.Call(rt, args, kwargs)
	case *Class:
		if f.IsModule() {
			break
		}
		o := f.New()
		initf, ok := f.lookup(InitSlot)
		if !ok {
			if len(args) != 0 || len(kwargs) != 0 {
				return nil, typeErrorf("%s() takes no arguments", f.Name())
			}
			return o, nil
		}
		a := make([]Value, 0, len(args)+1)
		a = append(a, o)
		a = append(a, args...)
		if _, err := rt.Call(initf, a, kwargs); err != nil {
			return nil, err
		}
		return o, nil
	}
	return nil, typeErrorf("'%s' object is not callable", TypeName(v))
}
