package machine

// A List represents an immutable list of values. The elements are stored as
// provided and may be lazy.
type List struct {
	elems []Value
}

// EmptyList is the value of an empty list.
var EmptyList = NewList(nil)

var (
	_ Value    = (*List)(nil)
	_ HasEqual = (*List)(nil)
)

// NewList returns a list containing the specified elements. Callers should
// not subsequently modify elems.
func NewList(elems []Value) *List { return &List{elems: elems} }

func (l *List) String() string { return lazyString(l) }

func (l *List) Type() string      { return "list" }
func (l *List) Len() int          { return len(l.elems) }
func (l *List) Index(i int) Value { return l.elems[i] }

// Equals forces the elements pairwise, in order, and stops at the first
// element that is not equal.
func (l *List) Equals(y Value) (bool, error) {
	yl := y.(*List)
	if len(l.elems) != len(yl.elems) {
		return false, nil
	}
	for i, xv := range l.elems {
		eq, err := Eq(xv, yl.elems[i])
		if !eq || err != nil {
			return bool(eq), err
		}
	}
	return true, nil
}
