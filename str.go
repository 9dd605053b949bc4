package pyrt

import (
	"fmt"
	"strings"
)

// String returns the printed form of v, as print and str produce it.
func String(v Value) string {
	if s, ok := v.(Str); ok {
		return string(s)
	}
	var p printer
	p.value(v)
	return p.b.String()
}

// Repr returns the form of v used for elements of a container. It differs
// from String only for Str, which is quoted.
func Repr(v Value) string {
	var p printer
	p.value(v)
	return p.b.String()
}

// printer renders values. stack holds the lists currently being printed so
// that a list containing itself prints as [...].
type printer struct {
	b     strings.Builder
	stack []*List
}

func (p *printer) value(v Value) {
	switch v := v.(type) {
	case Number:
		p.b.WriteString(v.String())
	case Str:
		quote(&p.b, string(v))
	case Bool:
		if v {
			p.b.WriteString("True")
		} else {
			p.b.WriteString("False")
		}
	case NoneType:
		p.b.WriteString("None")
	case *List:
		for _, l := range p.stack {
			if l == v {
				p.b.WriteString("[...]")
				return
			}
		}
		p.stack = append(p.stack, v)
		p.b.WriteByte('[')
		p.elems(v.items.Get())
		p.b.WriteByte(']')
		p.stack = p.stack[:len(p.stack)-1]
	case Tuple:
		p.b.WriteByte('(')
		p.elems(v.elems)
		if len(v.elems) == 1 {
			p.b.WriteByte(',')
		}
		p.b.WriteByte(')')
	case *Class:
		if v.IsModule() {
			p.b.WriteString("<module '")
			p.b.WriteString(v.ModuleName())
			p.b.WriteString("'>")
			return
		}
		p.b.WriteString("<class '")
		p.b.WriteString(v.Name())
		p.b.WriteString("'>")
	case *Object:
		p.b.WriteByte('<')
		p.b.WriteString(v.class.Name())
		p.b.WriteString(" object>")
	case *Function:
		p.b.WriteString("<built-in function ")
		p.b.WriteString(v.name)
		p.b.WriteByte('>')
	case *TextIOWrapper:
		p.b.WriteString(v.describe())
	default:
		p.b.WriteString("<undefined>")
	}
}

func (p *printer) elems(vs []Value) {
	for i, e := range vs {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.value(e)
	}
}

// quote writes s in single quotes, or in double quotes if s contains a
// single quote and no double quote. Backslashes, the chosen quote, and
// control characters are escaped.
func quote(b *strings.Builder, s string) {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	b.WriteRune(q)
	for _, r := range s {
		switch {
		case r == q || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(q)
}
