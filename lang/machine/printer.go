package machine

import (
	"fmt"
	"io"
	"strings"
)

// Printer controls printing of values in the syntax of the language.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// Lazy prints the thunks that are not forced yet as <thunk> instead of
	// forcing them. By default, the value is recursively forced.
	Lazy bool
}

// Print prints v followed by a newline. Unless p.Lazy is set, v is
// recursively forced first, and an evaluation error stops the printing and
// is returned. Attributes are printed in sorted order, a list or attribute set
// that contains itself is printed as <repeated>.
func (p *Printer) Print(v Value) error {
	pp := &printer{lazy: p.Lazy, seen: make(map[Value]bool)}
	if err := pp.print(v); err != nil {
		return err
	}
	pp.sb.WriteByte('\n')
	_, err := io.WriteString(p.Output, pp.sb.String())
	return err
}

// Sprint returns the string representation of v, recursively forced.
func Sprint(v Value) (string, error) {
	pp := &printer{seen: make(map[Value]bool)}
	if err := pp.print(v); err != nil {
		return "", err
	}
	return pp.sb.String(), nil
}

// lazyString returns the representation of v as printed by a lazy Printer,
// without the trailing newline.
func lazyString(v Value) string {
	pp := &printer{lazy: true, seen: make(map[Value]bool)}
	// never fails, a lazy printer only forces thunks already forced
	_ = pp.print(v)
	return pp.sb.String()
}

type printer struct {
	sb   strings.Builder
	lazy bool
	seen map[Value]bool
}

func (p *printer) print(v Value) error {
	if t, ok := v.(*Thunk); ok && p.lazy && !t.Forced() {
		p.sb.WriteString("<thunk>")
		return nil
	}

	v, err := Force(v)
	if err != nil {
		return err
	}

	switch v := v.(type) {
	case String:
		p.sb.WriteString(quoteString(string(v)))

	case *List:
		if p.seen[v] {
			p.sb.WriteString("<repeated>")
			return nil
		}
		p.seen[v] = true
		defer delete(p.seen, v)

		p.sb.WriteString("[ ")
		for _, elem := range v.elems {
			if err := p.print(elem); err != nil {
				return err
			}
			p.sb.WriteByte(' ')
		}
		p.sb.WriteString("]")

	case *Attrset:
		if p.seen[v] {
			p.sb.WriteString("<repeated>")
			return nil
		}
		p.seen[v] = true
		defer delete(p.seen, v)

		p.sb.WriteString("{ ")
		for _, k := range v.Keys() {
			elem, _ := v.Get(k)
			fmt.Fprintf(&p.sb, "%s = ", formatAttrName(k))
			if err := p.print(elem); err != nil {
				return err
			}
			p.sb.WriteString("; ")
		}
		p.sb.WriteString("}")

	default:
		p.sb.WriteString(v.String())
	}
	return nil
}

// quoteString returns s as a double-quoted string literal, escaping the
// characters that have a special meaning in such a literal.
func quoteString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '$':
			if i+1 < len(s) && s[i+1] == '{' {
				sb.WriteByte('\\')
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// formatAttrName returns name as-is if it is a valid identifier, otherwise
// as a quoted string.
func formatAttrName(name string) string {
	if isIdent(name) {
		return name
	}
	return quoteString(name)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '\'' || r == '-'):
		default:
			return false
		}
	}
	return true
}
