package machine

import (
	"strings"

	"github.com/dolthub/swiss"
)

// An Entry is a definition in an attribute set (or let) expression: the
// attribute path, as a sequence of name-producing bodies, and the body of the
// value. The path `a.b.c = v` is the entry {Path: [a, b, c], Value: v}.
type Entry struct {
	Path  []Body
	Value Body
}

// Attr returns a path component Body for the static attribute name.
func Attr(name string) Body { return Lit(String(name)) }

// AttrPath returns the path of static attribute names, e.g. AttrPath("a",
// "b") for `a.b`.
func AttrPath(names ...string) []Body {
	path := make([]Body, len(names))
	for i, name := range names {
		path[i] = Attr(name)
	}
	return path
}

// slot holds the definition of an attribute while the set is being built. A
// slot is either a leaf value or a tree of nested entries produced by path
// notation, which is built into an attribute set once all entries have been
// processed.
type slot struct {
	val  Value
	tree []Entry
}

func (s *slot) isTree() bool { return s.val == nil }

// A Builder constructs an attribute set from its entries. For a recursive
// set, the builder is itself the innermost shadowing frame of the environment
// in which the entries are evaluated, so that a lookup against it drives the
// construction forward. Keys are evaluated strictly, values remain lazy.
type Builder struct {
	env     *Env
	entries []Entry
	next    int // index of the next entry to process
	active  int // number of entries (or the finalization) in progress

	order []string
	slots *swiss.Map[string, *slot]
	set   *Attrset
	err   error
}

var _ Binder = (*Builder)(nil)

// NewBuilder returns a builder for the attribute set made of entries. If
// recursive is true, the entries are evaluated in an environment where the
// attributes of the set are in scope (see Env).
func NewBuilder(env *Env, entries []Entry, recursive bool) *Builder {
	b := &Builder{
		env:     env,
		entries: entries,
		slots:   swiss.NewMap[string, *slot](uint32(len(entries))),
	}
	if recursive {
		b.env = env.WithShadow(b)
	}
	return b
}

// NewAttrset builds the attribute set made of entries. See NewBuilder for the
// meaning of recursive.
func NewAttrset(env *Env, entries []Entry, recursive bool) (*Attrset, error) {
	b := NewBuilder(env, entries, recursive)
	if err := b.Build(); err != nil {
		return nil, err
	}
	if b.set == nil {
		return nil, evalErrorf(InfiniteRecursion, "attribute set construction did not complete")
	}
	return b.set, nil
}

// Env returns the environment in which the entries are evaluated.
func (b *Builder) Env() *Env { return b.env }

// Attrset returns the built attribute set, or nil if the construction is not
// complete.
func (b *Builder) Attrset() *Attrset { return b.set }

// Build processes all pending entries and, if no entry is still in progress
// (i.e. Build is not called re-entrantly while processing an entry), builds
// the resulting attribute set. It is safe to call multiple times, an error is
// sticky.
func (b *Builder) Build() error {
	if b.err != nil || b.set != nil {
		return b.err
	}

	for b.next < len(b.entries) {
		if err := b.step(); err != nil {
			b.err = err
			return err
		}
	}
	if b.active > 0 {
		// re-entrant call, the outermost call finalizes the set
		return nil
	}
	if err := b.finalize(); err != nil {
		b.err = err
		return err
	}
	return nil
}

// Lookup implements Binder. If the set is not built yet, it drives the
// construction forward. When called re-entrantly while an entry is in
// progress, an attribute defined by a single value resolves to that value's
// thunk, so that forcing it only fails if it depends on the entry in
// progress. An attribute defined by path notation resolves to a thunk that
// fails with an InfiniteRecursion error if it is forced before the set is
// complete.
func (b *Builder) Lookup(name string) (Value, bool, error) {
	if err := b.Build(); err != nil {
		return nil, false, err
	}
	if b.set != nil {
		v, ok := b.set.Get(name)
		return v, ok, nil
	}

	s, ok := b.slots.Get(name)
	if !ok {
		return nil, false, nil
	}
	if !s.isTree() {
		return s.val, true, nil
	}
	return NewThunk(nil, func(*Env) (Value, error) {
		if b.err != nil {
			return nil, b.err
		}
		if b.set == nil {
			return nil, evalErrorf(InfiniteRecursion, "infinite recursion encountered while evaluating attribute '%s'", name)
		}
		v, _ := b.set.Get(name)
		return v, nil
	}), true, nil
}

// step processes the next entry: it evaluates the first component of its
// path and stores the value, or the tree of the remaining path, under that
// name. The index is advanced before any evaluation so that a re-entrant
// Build does not process the same entry again.
func (b *Builder) step() error {
	e := b.entries[b.next]
	b.next++

	b.active++
	defer func() { b.active-- }()

	if len(e.Path) == 0 {
		return evalErrorf(BadAttrName, "empty attribute path")
	}
	name, ok, err := evalAttrName(b.env, e.Path[0])
	if err != nil || !ok {
		// null names are silently skipped
		return err
	}

	var def *slot
	if tail := e.Path[1:]; len(tail) > 0 {
		def = &slot{tree: []Entry{{Path: tail, Value: e.Value}}}
	} else {
		def = &slot{val: NewThunk(b.env, e.Value)}
	}

	cur, ok := b.slots.Get(name)
	if !ok {
		b.slots.Put(name, def)
		b.order = append(b.order, name)
		return nil
	}
	return b.merge(name, cur, def)
}

// merge merges the new definition def into the existing slot cur. Two trees
// merge their entries, a tree and a leaf merge only if the leaf is an
// attribute set, two leaves never merge.
func (b *Builder) merge(name string, cur, def *slot) error {
	if !cur.isTree() && !def.isTree() {
		return evalErrorf(DuplicateAttr, "attribute '%s' already defined", name)
	}

	for _, s := range [...]*slot{cur, def} {
		if s.isTree() {
			continue
		}
		v, err := Force(s.val)
		if err != nil {
			return err
		}
		set, ok := v.(*Attrset)
		if !ok {
			return evalErrorf(DuplicateAttr, "attribute '%s' already defined as a '%s'", name, v.Type())
		}
		s.val, s.tree = nil, attrsetEntries(set)
	}
	cur.tree = append(cur.tree, def.tree...)
	return nil
}

func (b *Builder) finalize() error {
	b.active++
	defer func() { b.active-- }()

	set := newAttrset(len(b.order))
	for _, name := range b.order {
		s, _ := b.slots.Get(name)
		if !s.isTree() {
			set.m.Put(name, s.val)
			continue
		}
		nested, err := NewAttrset(b.env, s.tree, false)
		if err != nil {
			return err
		}
		set.m.Put(name, nested)
	}
	b.set = set
	b.slots, b.order = nil, nil
	return nil
}

// attrsetEntries returns the bindings of set as entries, so that they can be
// merged with path-notation entries.
func attrsetEntries(set *Attrset) []Entry {
	keys := set.Keys()
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		v, _ := set.Get(k)
		entries = append(entries, Entry{Path: []Body{Attr(k)}, Value: Lit(v)})
	}
	return entries
}

// evalAttrName evaluates the name-producing body in env. It returns false if
// the name is null, and fails with BadAttrName if it is not a string.
func evalAttrName(env *Env, body Body) (string, bool, error) {
	v, err := body(env)
	if err == nil {
		v, err = Force(v)
	}
	if err != nil {
		return "", false, err
	}
	return asAttrName(v)
}

func asAttrName(v Value) (string, bool, error) {
	switch v := v.(type) {
	case String:
		return string(v), true, nil
	case NullType:
		return "", false, nil
	default:
		return "", false, evalErrorf(BadAttrName, "attribute name is of type '%s' but a string was expected", v.Type())
	}
}

// Attrpath forces each component and validates that it is a string or null,
// as required for the components of an attribute path. It returns the forced
// components.
func Attrpath(components ...Value) ([]Value, error) {
	res := make([]Value, len(components))
	for i, c := range components {
		v, err := Force(c)
		if err != nil {
			return nil, err
		}
		if _, _, err := asAttrName(v); err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

func formatPath(path []string) string {
	return strings.Join(path, ".")
}
