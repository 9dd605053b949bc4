package pyrt

import (
	"sort"

	"github.com/rs/zerolog"
)

// ModuleDef describes an importable module. Init builds the module's value
// once per Runtime, after the builtins and standard streams exist.
type ModuleDef struct {
	Name string
	Init func(rt *Runtime) (Value, error)
}

// registered holds the modules added by Register.
var registered []ModuleDef

// Register adds a module to every Runtime created afterward. Module packages
// call it from init, so importing a module package for side effects makes the
// module importable. Register is not safe to call concurrently with
// NewRuntime.
func Register(def ModuleDef) {
	registered = append(registered, def)
}

// Runtime is the state shared by a generated program: its configuration,
// standard streams, builtins, and modules.
type Runtime struct {
	cfg Config
	log *zerolog.Logger

	stdin, stdout, stderr *TextIOWrapper

	builtins Frame
	modules  map[string]Value
}

// NewRuntime creates a Runtime. Zero fields of cfg take their values from
// DefaultConfig. Every registered module and every module in mods is
// initialized; a module in mods replaces a registered one with the same name.
func NewRuntime(cfg Config, mods ...ModuleDef) (*Runtime, error) {
	cfg = cfg.withDefaults()
	rt := &Runtime{
		cfg:     cfg,
		log:     cfg.Logger,
		modules: make(map[string]Value),
	}
	var err error
	if rt.stdin, err = newStdStream(Stdin, cfg.Stdin, nil, cfg.Encoding, rt.log); err != nil {
		return nil, err
	}
	if rt.stdout, err = newStdStream(Stdout, nil, cfg.Stdout, cfg.Encoding, rt.log); err != nil {
		return nil, err
	}
	if rt.stderr, err = newStdStream(Stderr, nil, cfg.Stderr, cfg.Encoding, rt.log); err != nil {
		return nil, err
	}
	rt.initBuiltins()
	defs := make(map[string]ModuleDef)
	for _, def := range registered {
		defs[def.Name] = def
	}
	for _, def := range mods {
		defs[def.Name] = def
	}
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, err := defs[name].Init(rt)
		if err != nil {
			return nil, err
		}
		rt.modules[name] = v
		rt.log.Debug().Str("module", name).Msg("initialized module")
	}
	return rt, nil
}

// Config returns the runtime's configuration.
func (rt *Runtime) Config() Config {
	return rt.cfg
}

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *zerolog.Logger {
	return rt.log
}

// Stdin returns the standard input stream.
func (rt *Runtime) Stdin() *TextIOWrapper {
	return rt.stdin
}

// Stdout returns the standard output stream.
func (rt *Runtime) Stdout() *TextIOWrapper {
	return rt.stdout
}

// Stderr returns the standard error stream.
func (rt *Runtime) Stderr() *TextIOWrapper {
	return rt.stderr
}

// Builtins returns a copy of the builtin function table.
func (rt *Runtime) Builtins() map[string]Value {
	r := make(map[string]Value, len(rt.builtins))
	for k, v := range rt.builtins {
		r[k] = v
	}
	return r
}

// Builtin returns the builtin function with the given name.
func (rt *Runtime) Builtin(name string) (*Function, bool) {
	f, ok := rt.builtins[name].(*Function)
	return f, ok
}

// NewFrames creates a scope stack whose global frame holds the builtins.
func (rt *Runtime) NewFrames() *Frames {
	return NewFrames(Frame(rt.Builtins()))
}

// Import returns the module with the given name.
func (rt *Runtime) Import(name string) (Value, error) {
	m, ok := rt.modules[name]
	if !ok {
		return nil, NewExceptionf(NameError, "No module named '%s'", name)
	}
	rt.log.Debug().Str("module", name).Msg("import")
	return m, nil
}

// ImportFrom imports names from a module, as in from m import a as b. With no
// names, every public member is imported.
func (rt *Runtime) ImportFrom(module string, names ...ImportName) (map[string]Value, error) {
	m, err := rt.Import(module)
	if err != nil {
		return nil, err
	}
	return ImportNames(m, names...)
}

// Modules returns the names of the importable modules, sorted.
func (rt *Runtime) Modules() []string {
	r := make([]string, 0, len(rt.modules))
	for k := range rt.modules {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
