package machine_test

import (
	"testing"

	"github.com/mna/nixrt/lang/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThunk_Memoised(t *testing.T) {
	env := machine.NewEnv("/")
	calls := 0
	th := machine.NewThunk(env, func(*machine.Env) (machine.Value, error) {
		calls++
		return list(machine.Int(1)), nil
	})
	require.False(t, th.Forced())
	require.Equal(t, "<thunk>", th.String())
	require.Equal(t, "thunk", th.Type())

	v1, err := machine.Force(th)
	require.NoError(t, err)
	v2, err := machine.Force(th)
	require.NoError(t, err)
	require.Same(t, v1, v2)
	require.Equal(t, 1, calls)
	require.True(t, th.Forced())
	require.Equal(t, "list", th.Type())
	require.Equal(t, "[ 1 ]", th.String())

	// forcing a forced value is the identity
	v3, err := machine.Force(v1)
	require.NoError(t, err)
	require.Same(t, v1, v3)
}

func TestThunk_Flatten(t *testing.T) {
	env := machine.NewEnv("/")
	inner := machine.NewThunk(env, machine.Lit(machine.String("x")))
	outer := machine.NewThunk(env, machine.Lit(inner))

	v, err := machine.Force(outer)
	require.NoError(t, err)
	require.Equal(t, machine.String("x"), v)
	require.True(t, inner.Forced())
}

func TestThunk_FailureNotMemoised(t *testing.T) {
	env := machine.NewEnv("/")
	calls := 0
	th := machine.NewThunk(env, func(*machine.Env) (machine.Value, error) {
		calls++
		if calls == 1 {
			return nil, errBoom
		}
		return machine.Int(calls), nil
	})

	_, err := machine.Force(th)
	require.ErrorIs(t, err, errBoom)
	require.False(t, th.Forced())

	v, err := machine.Force(th)
	require.NoError(t, err)
	require.Equal(t, machine.Int(2), v)
}

func TestThunk_InfiniteRecursion(t *testing.T) {
	env := machine.NewEnv("/")
	var th *machine.Thunk
	th = machine.NewThunk(env, func(*machine.Env) (machine.Value, error) {
		return machine.Force(th)
	})

	_, err := machine.Force(th)
	requireKind(t, err, machine.InfiniteRecursion)
	require.False(t, th.Forced())
	require.Equal(t, 0, env.Thread().Depth())

	// let x = x + 1; in x
	_, err = forceBody(t, env, letBody([]machine.Entry{
		entry("x", addBody(lookup("x"), machine.Lit(machine.Int(1)))),
	}, lookup("x")))
	requireKind(t, err, machine.InfiniteRecursion)
}

func TestThunk_MaxForceDepth(t *testing.T) {
	chain := func(env *machine.Env, n int) machine.Value {
		var v machine.Value = machine.Int(0)
		for i := 0; i < n; i++ {
			inner := v
			v = machine.NewThunk(env, func(*machine.Env) (machine.Value, error) {
				return machine.Force(inner)
			})
		}
		return v
	}

	th := &machine.Thread{MaxForceDepth: 10}
	env := th.NewEnv()

	v, err := machine.Force(chain(env, 10))
	require.NoError(t, err)
	require.Equal(t, machine.Int(0), v)

	_, err = machine.Force(chain(env, 11))
	requireKind(t, err, machine.InfiniteRecursion)
	require.Equal(t, 0, th.Depth())

	// the default limit is large enough for moderately deep chains
	env = machine.NewEnv("/")
	v, err = machine.Force(chain(env, 1000))
	require.NoError(t, err)
	require.Equal(t, machine.Int(0), v)
}

func TestTypeOf(t *testing.T) {
	env := machine.NewEnv("/")
	cases := []struct {
		v    machine.Value
		want string
	}{
		{machine.Int(1), "int"},
		{machine.Float(1), "float"},
		{machine.True, "bool"},
		{machine.Null, "null"},
		{machine.String(""), "string"},
		{machine.NewPath("/"), "path"},
		{machine.EmptyList, "list"},
		{machine.EmptyAttrset, "set"},
		{machine.ParamLambda(env, "x", lookup("x")), "lambda"},
		{machine.NewThunk(env, machine.Lit(machine.Int(1))), "int"},
		{machine.NewThunk(env, machine.Lit(machine.NewThunk(env, machine.Lit(machine.EmptyList)))), "list"},
	}
	builtins, err := env.Lookup("builtins")
	require.NoError(t, err)
	typeOf, err := machine.Select(builtins, []machine.Value{machine.String("typeOf")}, nil)
	require.NoError(t, err)
	builtinsTypeOf, err := machine.Select(builtins, []machine.Value{machine.String("builtins"), machine.String("typeOf")}, nil)
	require.NoError(t, err)

	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			got, err := machine.TypeOf(c.v)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)

			for _, fn := range []machine.Value{typeOf, builtinsTypeOf} {
				got, err := machine.Apply(fn, c.v)
				require.NoError(t, err)
				assert.Equal(t, machine.String(c.want), got)
			}
		})
	}

	_, err = machine.TypeOf(failing())
	require.ErrorIs(t, err, errBoom)

	// only reachable through builtins
	_, err = env.Lookup("typeOf")
	requireKind(t, err, machine.UnboundVar)
	require.False(t, machine.IsUniverse("typeOf"))
	require.True(t, machine.IsUniverse("builtins"))
}

func TestRecursiveForce(t *testing.T) {
	env := machine.NewEnv("/")
	elem := machine.NewThunk(env, machine.Lit(machine.Int(1)))
	nested := machine.NewThunk(env, machine.Lit(set(map[string]machine.Value{"a": elem})))
	v := list(nested, machine.String("x"))

	got, err := machine.RecursiveForce(v)
	require.NoError(t, err)
	require.Same(t, v, got)
	require.True(t, nested.Forced())
	require.True(t, elem.Forced())

	_, err = machine.RecursiveForce(list(machine.Int(1), set(map[string]machine.Value{"b": failing()})))
	require.ErrorIs(t, err, errBoom)

	// cycles terminate
	got, err = machine.RecursiveForce(machine.Universe)
	require.NoError(t, err)
	require.Same(t, machine.Universe, got)
}
