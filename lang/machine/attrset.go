package machine

import (
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"
)

// An Attrset represents an immutable mapping from attribute names to values.
// The values may be lazy. Iteration order of the underlying map is not
// observable, Keys returns the names in sorted order.
type Attrset struct {
	m *swiss.Map[string, Value]
}

// EmptyAttrset is the value of an empty attribute set.
var EmptyAttrset = newAttrset(0)

var (
	_ Value    = (*Attrset)(nil)
	_ HasEqual = (*Attrset)(nil)
	_ Binder   = (*Attrset)(nil)
)

func newAttrset(size int) *Attrset {
	return &Attrset{m: swiss.NewMap[string, Value](uint32(size))}
}

// MakeAttrset returns an attribute set with the same bindings as m. The
// values are stored as-is and may be lazy.
func MakeAttrset(m map[string]Value) *Attrset {
	a := newAttrset(len(m))
	for k, v := range m {
		a.m.Put(k, v)
	}
	return a
}

// String returns the representation of the attribute set without forcing its
// values, see Printer.
func (a *Attrset) String() string { return lazyString(a) }

func (a *Attrset) Type() string { return "set" }
func (a *Attrset) Len() int     { return a.m.Count() }

// Get returns the (possibly lazy) value stored under name, or false if the
// attribute set has no such attribute.
func (a *Attrset) Get(name string) (Value, bool) {
	return a.m.Get(name)
}

// Lookup implements Binder for an attribute set used as a scope frame.
func (a *Attrset) Lookup(name string) (Value, bool, error) {
	v, ok := a.m.Get(name)
	return v, ok, nil
}

// Keys returns the attribute names in sorted order.
func (a *Attrset) Keys() []string {
	keys := make([]string, 0, a.m.Count())
	a.m.Iter(func(k string, _ Value) bool {
		keys = append(keys, k)
		return false
	})
	slices.Sort(keys)
	return keys
}

// Equals compares the sizes first, then for each attribute of the receiver,
// in sorted order, the attribute must exist in y and the values must be
// equal. Values are forced only as needed.
func (a *Attrset) Equals(y Value) (bool, error) {
	ya := y.(*Attrset)
	if a.Len() != ya.Len() {
		return false, nil
	}
	for _, k := range a.Keys() {
		yv, ok := ya.m.Get(k)
		if !ok {
			return false, nil
		}
		xv, _ := a.m.Get(k)
		eq, err := Eq(xv, yv)
		if !eq || err != nil {
			return bool(eq), err
		}
	}
	return true, nil
}

// update returns a new attribute set with the bindings of a, overwritten by
// the bindings of b.
func (a *Attrset) update(b *Attrset) *Attrset {
	res := newAttrset(a.Len() + b.Len())
	a.m.Iter(func(k string, v Value) bool {
		res.m.Put(k, v)
		return false
	})
	b.m.Iter(func(k string, v Value) bool {
		res.m.Put(k, v)
		return false
	})
	return res
}
