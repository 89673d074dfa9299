package machine

import (
	"strings"
)

// String is the type of a text string. It encapsulates an immutable sequence
// of Unicode characters, stored UTF-8 encoded.
type String string

var (
	_ Value   = String("")
	_ Ordered = String("")
)

func (s String) String() string { return quoteString(string(s)) }
func (s String) Type() string   { return "string" }

func (s String) Cmp(y Value) (int, error) {
	sb := y.(String)
	return strings.Compare(string(s), string(sb)), nil
}
