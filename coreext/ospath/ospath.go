// Package ospath provides the os.path module.
package ospath

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zephyrtronium/pyrt"
)

// Module is the definition of the os.path module.
var Module = pyrt.ModuleDef{Name: "os.path", Init: initPath}

func init() {
	pyrt.Register(Module)
}

func initPath(rt *pyrt.Runtime) (pyrt.Value, error) {
	members := map[string]pyrt.Value{
		"abspath":  pyrt.NewFunction("abspath", abspath),
		"basename": pyrt.NewFunction("basename", basename),
		"dirname":  pyrt.NewFunction("dirname", dirname),
		"exists":   pyrt.NewFunction("exists", exists),
		"isabs":    pyrt.NewFunction("isabs", isabs),
		"join":     pyrt.NewFunction("join", join),
		"pathsep":  pyrt.Str(filepath.ListSeparator),
		"sep":      pyrt.Str(filepath.Separator),
	}
	return pyrt.NewModule("os.path", members)
}

// strArgs returns the arguments of fn, which must all be str.
func strArgs(fn string, args []pyrt.Value, kwargs pyrt.Kwargs) ([]string, error) {
	if len(kwargs) != 0 {
		return nil, pyrt.NewExceptionf(pyrt.TypeError, "%s() takes no keyword arguments", fn)
	}
	r := make([]string, len(args))
	for i, a := range args {
		s, ok := a.(pyrt.Str)
		if !ok {
			return nil, pyrt.NewExceptionf(pyrt.TypeError, "%s() argument must be str, not %s", fn, pyrt.TypeName(a))
		}
		r[i] = string(s)
	}
	return r, nil
}

// pathArg returns the single path argument of fn.
func pathArg(fn string, args []pyrt.Value, kwargs pyrt.Kwargs) (string, error) {
	if len(args) != 1 {
		return "", pyrt.NewExceptionf(pyrt.ArityError, "%s() takes exactly one argument (%d given)", fn, len(args))
	}
	s, err := strArgs(fn, args, kwargs)
	if err != nil {
		return "", err
	}
	return s[0], nil
}

// abspath is an os.path function.
//
// abspath returns an absolute version of the argument path.
func abspath(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	p, err := pathArg("abspath", args, kwargs)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, &pyrt.Exception{Kind: pyrt.IOError, Msg: err.Error(), Err: err}
	}
	return pyrt.Str(abs), nil
}

// isabs is an os.path function.
//
// isabs returns whether the argument is an absolute path.
func isabs(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	p, err := pathArg("isabs", args, kwargs)
	if err != nil {
		return nil, err
	}
	return pyrt.Bool(filepath.IsAbs(p)), nil
}

// exists is an os.path function.
//
// exists returns whether the argument names an existing file or directory.
func exists(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	p, err := pathArg("exists", args, kwargs)
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(p)
	switch {
	case err == nil:
		return pyrt.True, nil
	case errors.Is(err, fs.ErrNotExist):
		return pyrt.False, nil
	}
	rt.Logger().Debug().Err(err).Str("path", p).Msg("stat failed")
	return pyrt.False, nil
}

// basename is an os.path function.
func basename(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	p, err := pathArg("basename", args, kwargs)
	if err != nil {
		return nil, err
	}
	_, file := filepath.Split(p)
	return pyrt.Str(file), nil
}

// dirname is an os.path function.
func dirname(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	p, err := pathArg("dirname", args, kwargs)
	if err != nil {
		return nil, err
	}
	dir, _ := filepath.Split(p)
	if len(dir) > 1 {
		dir = dir[:len(dir)-1]
	}
	return pyrt.Str(dir), nil
}

// join is an os.path function.
//
// join joins path components with the separator. An absolute component
// discards everything before it.
func join(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	if len(args) == 0 {
		return nil, pyrt.NewException(pyrt.ArityError, "join() missing 1 required positional argument: 'a'")
	}
	parts, err := strArgs("join", args, kwargs)
	if err != nil {
		return nil, err
	}
	r := ""
	for _, p := range parts {
		switch {
		case filepath.IsAbs(p):
			r = p
		case r == "" || os.IsPathSeparator(r[len(r)-1]):
			r += p
		default:
			r += string(filepath.Separator) + p
		}
	}
	return pyrt.Str(r), nil
}
