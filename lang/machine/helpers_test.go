package machine_test

import (
	"errors"
	"testing"

	"github.com/mna/nixrt/lang/machine"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// failing returns a thunk that fails with errBoom when forced.
func failing() *machine.Thunk {
	return machine.NewThunk(nil, func(*machine.Env) (machine.Value, error) {
		return nil, errBoom
	})
}

// lookup returns a body that resolves name in its environment.
func lookup(name string) machine.Body {
	return func(env *machine.Env) (machine.Value, error) {
		return env.Lookup(name)
	}
}

// addBody returns a body that evaluates l + r in its environment.
func addBody(l, r machine.Body) machine.Body {
	return func(env *machine.Env) (machine.Value, error) {
		x, err := l(env)
		if err != nil {
			return nil, err
		}
		y, err := r(env)
		if err != nil {
			return nil, err
		}
		return machine.Add(env, x, y)
	}
}

// selectBody returns a body that evaluates v.name in its environment.
func selectBody(v machine.Body, name string) machine.Body {
	return func(env *machine.Env) (machine.Value, error) {
		x, err := v(env)
		if err != nil {
			return nil, err
		}
		return machine.Select(x, []machine.Value{machine.String(name)}, nil)
	}
}

// listBody returns a body that evaluates to the list of the values of
// bodies, lazily.
func listBody(bodies ...machine.Body) machine.Body {
	return func(env *machine.Env) (machine.Value, error) {
		elems := make([]machine.Value, len(bodies))
		for i, b := range bodies {
			elems[i] = machine.NewThunk(env, b)
		}
		return machine.NewList(elems), nil
	}
}

func list(vs ...machine.Value) *machine.List {
	return machine.NewList(vs)
}

func set(m map[string]machine.Value) *machine.Attrset {
	return machine.MakeAttrset(m)
}

func entry(name string, v machine.Body) machine.Entry {
	return machine.Entry{Path: machine.AttrPath(name), Value: v}
}

func sprint(t *testing.T, v machine.Value) string {
	t.Helper()
	s, err := machine.Sprint(v)
	require.NoError(t, err)
	return s
}

func requireKind(t *testing.T, err error, k machine.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, machine.IsKind(err, k), "want %s, got %v", k, err)
}
