package pyrt

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorKind classifies an Exception. An ErrorKind is itself an error so that
// callers can match with errors.Is(err, pyrt.IndexError).
type ErrorKind int

const (
	// NameError is an unresolved identifier.
	NameError ErrorKind = iota + 1
	// AttributeError is a missing member or an invalid attribute target.
	AttributeError
	// TypeError is an operator or builtin applied to an incompatible
	// combination of variants.
	TypeError
	// IndexError is an out-of-range index.
	IndexError
	// ValueError is a value of the right type but wrong content, such as a
	// zero slice step or a reduction over an empty sequence.
	ValueError
	// ArityError is a call with the wrong number of arguments.
	ArityError
	// IOError is a filesystem or stream failure.
	IOError
	// ZeroDivisionError is division or modulo by zero.
	ZeroDivisionError
	// RuntimeError is a violation of exclusive access to shared storage.
	RuntimeError
)

func (k ErrorKind) String() string {
	switch k {
	case NameError:
		return "NameError"
	case AttributeError:
		return "AttributeError"
	case TypeError:
		return "TypeError"
	case IndexError:
		return "IndexError"
	case ValueError:
		return "ValueError"
	case ArityError:
		return "ArityError"
	case IOError:
		return "IOError"
	case ZeroDivisionError:
		return "ZeroDivisionError"
	case RuntimeError:
		return "RuntimeError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error returns the kind's name.
func (k ErrorKind) Error() string {
	return k.String()
}

// An Exception is an error raised by a runtime operation.
type Exception struct {
	Kind ErrorKind
	// Msg is the message in the modeled language's wording.
	Msg string
	// Err is the underlying Go error, if any.
	Err error
}

// NewException creates an exception with the given kind and message.
func NewException(kind ErrorKind, msg string) *Exception {
	return &Exception{Kind: kind, Msg: msg}
}

// NewExceptionf creates an exception with the given kind and formatted
// message.
func NewExceptionf(kind ErrorKind, format string, args ...interface{}) *Exception {
	return NewException(kind, fmt.Sprintf(format, args...))
}

// Error returns the kind and the message.
func (e *Exception) Error() string {
	return e.Kind.String() + ": " + e.Msg
}

// Unwrap returns the underlying error.
func (e *Exception) Unwrap() error {
	return e.Err
}

// Is reports whether target is the exception's kind.
func (e *Exception) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// KindOf returns the kind of the Exception in err's chain, or 0 if there is
// none.
func KindOf(err error) ErrorKind {
	var e *Exception
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ioError converts an OS error to an IOError. Exceptions are returned
// unchanged.
func ioError(err error) error {
	if err == nil {
		return nil
	}
	var e *Exception
	if errors.As(err, &e) {
		return err
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return &Exception{Kind: IOError, Msg: fmt.Sprintf("%v: '%s'", pe.Err, pe.Path), Err: err}
	}
	return &Exception{Kind: IOError, Msg: err.Error(), Err: err}
}

func arityErrorf(format string, args ...interface{}) *Exception {
	return NewExceptionf(ArityError, format, args...)
}

func typeErrorf(format string, args ...interface{}) *Exception {
	return NewExceptionf(TypeError, format, args...)
}
