package pyrt

import "sort"

// Frame is one scope: a block or function activation's name bindings.
type Frame map[string]Value

// Frames is a stack of scopes. Frame 0 is the global scope and the last frame
// is the current one.
type Frames struct {
	frames []Frame
}

// NewFrames creates a scope stack with global as its only frame. A nil global
// starts empty.
func NewFrames(global Frame) *Frames {
	if global == nil {
		global = make(Frame)
	}
	return &Frames{frames: []Frame{global}}
}

// Depth returns the number of frames.
func (f *Frames) Depth() int {
	return len(f.frames)
}

// Push enters a new, empty scope.
func (f *Frames) Push() {
	f.frames = append(f.frames, make(Frame))
}

// Pop leaves the current scope. The global frame is never removed.
func (f *Frames) Pop() {
	if len(f.frames) <= 1 {
		return
	}
	f.frames[len(f.frames)-1] = nil
	f.frames = f.frames[:len(f.frames)-1]
}

// Lookup finds the innermost binding of name.
func (f *Frames) Lookup(name string) (Value, error) {
	for i := len(f.frames) - 1; i >= 0; i-- {
		if v, ok := f.frames[i][name]; ok {
			return v, nil
		}
	}
	return nil, NewExceptionf(NameError, "name '%s' is not defined", name)
}

// Bind creates or overwrites name in the current frame.
func (f *Frames) Bind(name string, v Value) {
	f.frames[len(f.frames)-1][name] = v
}

// BindAll binds every name in m in the current frame.
func (f *Frames) BindAll(m map[string]Value) {
	cur := f.frames[len(f.frames)-1]
	for k, v := range m {
		cur[k] = v
	}
}

// BindGlobal creates or overwrites name in the global frame.
func (f *Frames) BindGlobal(name string, v Value) {
	f.frames[0][name] = v
}

// Unbind deletes name from the current frame.
func (f *Frames) Unbind(name string) error {
	cur := f.frames[len(f.frames)-1]
	if _, ok := cur[name]; !ok {
		return NewExceptionf(NameError, "name '%s' is not defined", name)
	}
	delete(cur, name)
	return nil
}

// Capture returns a scope stack sharing the current frames, for a closure.
// Bindings made later in any captured frame are visible through both stacks,
// but pushing and popping on one does not affect the other.
func (f *Frames) Capture() *Frames {
	return &Frames{frames: append([]Frame(nil), f.frames...)}
}

// Names returns the names bound in the current frame, sorted.
func (f *Frames) Names() []string {
	cur := f.frames[len(f.frames)-1]
	r := make([]string, 0, len(cur))
	for k := range cur {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
