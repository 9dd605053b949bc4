package pyrt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// StreamKind identifies what a TextIOWrapper is attached to.
type StreamKind int

const (
	// Stdin is the runtime's standard input.
	Stdin StreamKind = iota
	// Stdout is the runtime's standard output.
	Stdout
	// Stderr is the runtime's standard error.
	Stderr
	// File is a file opened with open.
	File
	// Closed is any stream after close.
	Closed
)

func (k StreamKind) String() string {
	switch k {
	case Stdin:
		return "stdin"
	case Stdout:
		return "stdout"
	case Stderr:
		return "stderr"
	case File:
		return "file"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("StreamKind(%d)", int(k))
}

// TextIOWrapper is a text stream. A *TextIOWrapper is a handle: every alias
// shares the same OS file, buffers, and open state.
type TextIOWrapper struct {
	kind     StreamKind
	name     string
	mode     string
	encoding string

	// file is the OS file for File streams and for standard streams that
	// are attached to one.
	file *os.File
	// src and dst are the raw byte streams.
	src io.Reader
	dst io.Writer
	// enc is nil for UTF-8 streams.
	enc encoding.Encoding

	r  *bufio.Reader
	w  *bufio.Writer
	tw *transform.Writer

	readable, writable bool
	// owned is true when closing the stream should close the OS file.
	owned bool

	log *zerolog.Logger
}

func (*TextIOWrapper) Kind() Kind { return KindTextIOWrapper }
func (*TextIOWrapper) isValue()   {}

// newStdStream wraps one of the runtime's standard streams. Exactly one of
// src and dst is non-nil.
func newStdStream(kind StreamKind, src io.Reader, dst io.Writer, encname string, log *zerolog.Logger) (*TextIOWrapper, error) {
	name, enc, err := lookupEncoding(encname)
	if err != nil {
		return nil, err
	}
	s := &TextIOWrapper{
		kind:     kind,
		name:     "<" + kind.String() + ">",
		encoding: name,
		src:      src,
		dst:      dst,
		enc:      enc,
		log:      log,
	}
	if src != nil {
		s.mode = "r"
		s.readable = true
		s.file, _ = src.(*os.File)
	} else {
		s.mode = "w"
		s.writable = true
		s.file, _ = dst.(*os.File)
	}
	s.setup()
	return s, nil
}

// openFile opens a file for a TextIOWrapper. The mode is scanned for the
// characters r, w, a, and +; r reads, w truncates or creates and writes, a
// creates and appends, and + adds whichever of reading and writing is
// missing.
func openFile(name, mode, encname string, log *zerolog.Logger) (*TextIOWrapper, error) {
	rd := strings.ContainsRune(mode, 'r')
	wr := strings.ContainsRune(mode, 'w')
	ap := strings.ContainsRune(mode, 'a')
	plus := strings.ContainsRune(mode, '+')
	if !rd && !wr && !ap {
		return nil, NewExceptionf(ValueError, "invalid mode: '%s'", mode)
	}
	canon, enc, err := lookupEncoding(encname)
	if err != nil {
		return nil, err
	}
	readable := rd || plus
	writable := wr || ap || plus
	var flag int
	switch {
	case readable && writable:
		flag = os.O_RDWR
	case writable:
		flag = os.O_WRONLY
	default:
		flag = os.O_RDONLY
	}
	if wr {
		flag |= os.O_CREATE | os.O_TRUNC
	}
	if ap {
		flag |= os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(name, flag, 0666)
	if err != nil {
		return nil, ioError(err)
	}
	s := &TextIOWrapper{
		kind:     File,
		name:     name,
		mode:     mode,
		encoding: canon,
		file:     f,
		src:      f,
		dst:      f,
		enc:      enc,
		readable: readable,
		writable: writable,
		owned:    true,
		log:      log,
	}
	s.setup()
	runtime.SetFinalizer(s, (*TextIOWrapper).finalize)
	log.Debug().Str("name", name).Str("mode", mode).Str("encoding", canon).Msg("opened file")
	return s, nil
}

// setup builds the buffered, decoding reader and encoding writer.
func (s *TextIOWrapper) setup() {
	if s.readable {
		var r io.Reader = s.src
		if s.enc != nil {
			r = transform.NewReader(r, s.enc.NewDecoder())
		}
		s.r = bufio.NewReader(r)
	}
	if s.writable {
		var w io.Writer = s.dst
		if s.enc != nil {
			s.tw = transform.NewWriter(w, s.enc.NewEncoder())
			w = s.tw
		}
		s.w = bufio.NewWriter(w)
	}
}

func (s *TextIOWrapper) finalize() {
	if s.kind != Closed {
		s.close()
	}
}

// Stream returns what the wrapper is attached to.
func (s *TextIOWrapper) Stream() StreamKind {
	return s.kind
}

// Name returns the file name, or <stdin>, <stdout>, or <stderr>.
func (s *TextIOWrapper) Name() string {
	return s.name
}

// Mode returns the mode string the stream was opened with.
func (s *TextIOWrapper) Mode() string {
	return s.mode
}

// Encoding returns the canonical name of the stream's codec.
func (s *TextIOWrapper) Encoding() string {
	return s.encoding
}

// IsClosed reports whether the stream has been closed.
func (s *TextIOWrapper) IsClosed() bool {
	return s.kind == Closed
}

func (s *TextIOWrapper) describe() string {
	var b strings.Builder
	b.WriteString("<_io.TextIOWrapper name=")
	quote(&b, s.name)
	b.WriteString(" mode=")
	quote(&b, s.mode)
	b.WriteString(" encoding=")
	quote(&b, s.encoding)
	b.WriteByte('>')
	return b.String()
}

// checkOpen fails with an IOError if the stream is closed.
func (s *TextIOWrapper) checkOpen() error {
	if s.kind == Closed {
		return NewException(IOError, "I/O operation on closed file")
	}
	return nil
}

func (s *TextIOWrapper) checkReadable() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if !s.readable {
		return NewException(IOError, "not readable")
	}
	// Pending writes must reach the file before reading past them.
	if s.w != nil && s.w.Buffered() > 0 {
		return s.Flush()
	}
	return nil
}

func (s *TextIOWrapper) checkWritable() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if !s.writable {
		return NewException(IOError, "not writable")
	}
	// Rewind over read-ahead so writes land after what has been consumed.
	if s.r != nil && s.r.Buffered() > 0 && s.enc == nil && s.file != nil {
		if _, err := s.file.Seek(-int64(s.r.Buffered()), io.SeekCurrent); err != nil {
			return ioError(err)
		}
		s.r.Reset(s.src)
	}
	return nil
}

// ReadLine reads through the next newline, which is kept. At end of file the
// result is the empty string.
func (s *TextIOWrapper) ReadLine() (string, error) {
	if err := s.checkReadable(); err != nil {
		return "", err
	}
	line, err := s.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return line, ioError(err)
	}
	return line, nil
}

// Read reads at most n characters, or everything remaining if n is negative.
func (s *TextIOWrapper) Read(n int) (string, error) {
	if err := s.checkReadable(); err != nil {
		return "", err
	}
	var b strings.Builder
	for k := 0; n < 0 || k < n; k++ {
		r, _, err := s.r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return b.String(), ioError(err)
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// Write writes str. Standard streams are flushed after each write.
func (s *TextIOWrapper) Write(str string) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if _, err := s.w.WriteString(str); err != nil {
		return ioError(err)
	}
	if s.kind != File {
		return s.Flush()
	}
	return nil
}

// Flush writes any buffered output to the underlying stream.
func (s *TextIOWrapper) Flush() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.w == nil {
		return nil
	}
	if err := s.w.Flush(); err != nil {
		return ioError(err)
	}
	return nil
}

// Close flushes and closes the stream. Closing a closed stream does nothing.
// Closing a standard stream detaches it without closing the process's file.
func (s *TextIOWrapper) Close() error {
	if s.kind == Closed {
		return nil
	}
	runtime.SetFinalizer(s, nil)
	return s.close()
}

func (s *TextIOWrapper) close() error {
	var err error
	if s.w != nil {
		err = s.w.Flush()
		if s.tw != nil {
			// The encoder may hold a partial sequence.
			if cerr := s.tw.Close(); err == nil {
				err = cerr
			}
		}
	}
	if s.owned && s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
	}
	s.log.Debug().Str("name", s.name).Stringer("stream", s.kind).Msg("closed stream")
	s.kind = Closed
	s.r, s.w, s.tw = nil, nil, nil
	s.file, s.src, s.dst = nil, nil, nil
	if err != nil {
		return ioError(err)
	}
	return nil
}

// IsTTY reports whether the stream is attached to a terminal.
func (s *TextIOWrapper) IsTTY() (bool, error) {
	if err := s.checkOpen(); err != nil {
		return false, err
	}
	if s.file == nil {
		return false, nil
	}
	return isTerminal(s.file.Fd()), nil
}

// Fileno returns the OS file descriptor.
func (s *TextIOWrapper) Fileno() (uintptr, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if s.file == nil {
		return 0, NewException(IOError, "fileno")
	}
	return s.file.Fd(), nil
}

// callIOWrapper dispatches a TextIOWrapper method.
func callIOWrapper(s *TextIOWrapper, attr string, args []Value, kwargs Kwargs) (Value, error) {
	noArgs := func() error {
		if len(args) != 0 {
			return arityErrorf("%s() takes no arguments (%d given)", attr, len(args))
		}
		return checkKwargs(attr, kwargs)
	}
	switch attr {
	case "close":
		if err := noArgs(); err != nil {
			return nil, err
		}
		return None, s.Close()
	case "flush":
		if err := noArgs(); err != nil {
			return nil, err
		}
		return None, s.Flush()
	case "read":
		if len(args) > 1 {
			return nil, arityErrorf("read expected at most 1 argument, got %d", len(args))
		}
		if err := checkKwargs(attr, kwargs); err != nil {
			return nil, err
		}
		n := -1
		if len(args) == 1 && args[0] != None {
			k, ok := args[0].(Number)
			if !ok || k.IsFloat() {
				return nil, typeErrorf("argument should be integer or None, not '%s'", TypeName(args[0]))
			}
			n = int(k.Int64())
		}
		r, err := s.Read(n)
		if err != nil {
			return nil, err
		}
		return Str(r), nil
	case "readline":
		if err := noArgs(); err != nil {
			return nil, err
		}
		r, err := s.ReadLine()
		if err != nil {
			return nil, err
		}
		return Str(r), nil
	case "write":
		if len(args) != 1 {
			return nil, arityErrorf("write() takes exactly one argument (%d given)", len(args))
		}
		if err := checkKwargs(attr, kwargs); err != nil {
			return nil, err
		}
		str, ok := args[0].(Str)
		if !ok {
			return nil, typeErrorf("write() argument must be str, not %s", TypeName(args[0]))
		}
		if err := s.Write(string(str)); err != nil {
			return nil, err
		}
		return Int(int64(utf8.RuneCountInString(string(str)))), nil
	case "isatty":
		if err := noArgs(); err != nil {
			return nil, err
		}
		ok, err := s.IsTTY()
		return Bool(ok), err
	case "fileno":
		if err := noArgs(); err != nil {
			return nil, err
		}
		fd, err := s.Fileno()
		if err != nil {
			return nil, err
		}
		return Int(int64(fd)), nil
	case "readable", "writable":
		if err := noArgs(); err != nil {
			return nil, err
		}
		if err := s.checkOpen(); err != nil {
			return nil, err
		}
		if attr == "readable" {
			return Bool(s.readable), nil
		}
		return Bool(s.writable), nil
	}
	return nil, attributeError(s, attr)
}

// ioWrapperAttr reads a TextIOWrapper data attribute.
func ioWrapperAttr(s *TextIOWrapper, attr string) (Value, error) {
	switch attr {
	case "name":
		return Str(s.name), nil
	case "mode":
		return Str(s.mode), nil
	case "encoding":
		return Str(s.encoding), nil
	case "closed":
		return Bool(s.kind == Closed), nil
	}
	return nil, attributeError(s, attr)
}
