package pyrt

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// DefaultEncoding is the text encoding of streams when none is configured.
const DefaultEncoding = "utf-8"

// codecs maps normalized encoding names to canonical names and codecs. A nil
// codec means the stream is already UTF-8 and needs no transformation. ASCII
// is decoded as its superset Windows-1252.
var codecs = map[string]struct {
	name string
	enc  encoding.Encoding
}{
	"utf-8":        {"utf-8", nil},
	"utf8":         {"utf-8", nil},
	"utf-16":       {"utf-16", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	"utf-16-le":    {"utf-16-le", unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
	"utf-16-be":    {"utf-16-be", unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)},
	"utf-32":       {"utf-32", utf32.UTF32(utf32.LittleEndian, utf32.UseBOM)},
	"utf-32-le":    {"utf-32-le", utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)},
	"utf-32-be":    {"utf-32-be", utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)},
	"latin-1":      {"latin-1", charmap.ISO8859_1},
	"latin1":       {"latin-1", charmap.ISO8859_1},
	"iso-8859-1":   {"latin-1", charmap.ISO8859_1},
	"cp1252":       {"cp1252", charmap.Windows1252},
	"windows-1252": {"cp1252", charmap.Windows1252},
	"ascii":        {"ascii", charmap.Windows1252},
}

// lookupEncoding finds the codec for an encoding name. Names are matched
// case-insensitively, with underscores equivalent to hyphens.
func lookupEncoding(name string) (string, encoding.Encoding, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	c, ok := codecs[n]
	if !ok {
		return "", nil, NewExceptionf(ValueError, "unknown encoding: %s", name)
	}
	return c.name, c.enc, nil
}
