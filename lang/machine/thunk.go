package machine

import (
	"fmt"
)

// A Body is a deferred computation that produces a value when evaluated in an
// environment. The compiler lowers every sub-expression that must not be
// evaluated immediately to a Body.
type Body func(env *Env) (Value, error)

// Lit returns a Body that always evaluates to v, regardless of the
// environment.
func Lit(v Value) Body {
	return func(*Env) (Value, error) { return v, nil }
}

type thunkState uint8

const (
	unforced thunkState = iota
	forcing
	forced
)

// A Thunk is a deferred computation: it holds a Body and the Env to evaluate
// it in, and memoises the resulting value the first time it is forced. Once
// forced, the env and body are released.
type Thunk struct {
	env   *Env
	body  Body
	val   Value
	state thunkState
}

var _ Value = (*Thunk)(nil)

// NewThunk returns a thunk that evaluates body in env when forced.
func NewThunk(env *Env, body Body) *Thunk {
	return &Thunk{env: env, body: body}
}

func (t *Thunk) String() string {
	if t.state == forced {
		return t.val.String()
	}
	return "<thunk>"
}

// Type returns the type of the forced value, or "thunk" if the thunk has not
// been forced yet. Use TypeOf to get the type of any value.
func (t *Thunk) Type() string {
	if t.state == forced {
		return t.val.Type()
	}
	return "thunk"
}

// Forced returns true if the thunk has already been evaluated.
func (t *Thunk) Forced() bool { return t.state == forced }

func (t *Thunk) force() (Value, error) {
	switch t.state {
	case forced:
		return t.val, nil
	case forcing:
		return nil, evalErrorf(InfiniteRecursion, "infinite recursion encountered")
	}

	th := t.env.Thread()
	if err := th.enter(); err != nil {
		return nil, err
	}
	defer th.leave()

	t.state = forcing
	v, err := t.body(t.env)
	if err == nil {
		// a body may return another thunk, flatten it
		v, err = Force(v)
	}
	if err == nil && v == nil {
		err = fmt.Errorf("internal error: nil value returned by thunk body")
	}
	if err != nil {
		// not memoised, a subsequent force evaluates the body again
		t.state = unforced
		return nil, err
	}

	t.val, t.state = v, forced
	t.env, t.body = nil, nil
	return v, nil
}

// Force drives v to its non-thunk form. If v is not a *Thunk, it is returned
// as-is. Forcing is idempotent: forcing a thunk a second time returns the
// memoised value.
func Force(v Value) (Value, error) {
	if t, ok := v.(*Thunk); ok {
		return t.force()
	}
	return v, nil
}

// RecursiveForce forces v and, if it is a list or an attribute set, every
// value transitively reachable from it. It returns the forced v. It is meant
// to be called on the value of a whole program, never by the operators.
func RecursiveForce(v Value) (Value, error) {
	seen := make(map[Value]bool)
	return recursiveForce(v, seen)
}

func recursiveForce(v Value, seen map[Value]bool) (Value, error) {
	v, err := Force(v)
	if err != nil {
		return nil, err
	}

	switch v := v.(type) {
	case *List:
		if seen[v] {
			return v, nil
		}
		seen[v] = true
		for _, elem := range v.elems {
			if _, err := recursiveForce(elem, seen); err != nil {
				return nil, err
			}
		}

	case *Attrset:
		if seen[v] {
			return v, nil
		}
		seen[v] = true
		for _, k := range v.Keys() {
			elem, _ := v.Get(k)
			if _, err := recursiveForce(elem, seen); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

// TypeOf returns the name of the type of v, forcing it first if it is a
// thunk. It is one of "int", "float", "bool", "null", "string", "path",
// "list", "set" or "lambda".
func TypeOf(v Value) (string, error) {
	v, err := Force(v)
	if err != nil {
		return "", err
	}
	return v.Type(), nil
}
