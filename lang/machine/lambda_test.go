package machine_test

import (
	"testing"

	"github.com/mna/nixrt/lang/machine"
	"github.com/stretchr/testify/require"
)

func TestPatternLambda(t *testing.T) {
	xy := []machine.Formal{
		{Name: "x"},
		{Name: "y", Default: machine.Lit(machine.Int(10))},
	}
	body := listBody(lookup("x"), lookup("y"))

	cases := []struct {
		desc    string
		pattern *machine.Pattern
		body    machine.Body
		arg     machine.Value
		strict  bool
		want    string
		kind    machine.ErrorKind // only checked if want is empty
	}{
		{"default", &machine.Pattern{Formals: xy}, body,
			set(map[string]machine.Value{"x": machine.Int(1)}), false, "[ 1 10 ]", 0},
		{"provided", &machine.Pattern{Formals: xy}, body,
			set(map[string]machine.Value{"x": machine.Int(1), "y": machine.Int(2)}), false, "[ 1 2 ]", 0},
		{"missing", &machine.Pattern{Formals: xy}, body,
			set(map[string]machine.Value{"y": machine.Int(2)}), false, "", machine.MissingArg},
		{"not a set", &machine.Pattern{Formals: xy}, body,
			list(machine.Int(1)), false, "", machine.TypeMismatch},
		{"extra accepted", &machine.Pattern{Formals: xy}, body,
			set(map[string]machine.Value{"x": machine.Int(1), "z": machine.Int(3)}), false, "[ 1 10 ]", 0},
		{"extra strict", &machine.Pattern{Formals: xy}, body,
			set(map[string]machine.Value{"x": machine.Int(1), "z": machine.Int(3)}), true, "", machine.UnexpectedArg},
		{"extra strict ellipsis", &machine.Pattern{Formals: xy, Ellipsis: true}, body,
			set(map[string]machine.Value{"x": machine.Int(1), "z": machine.Int(3)}), true, "[ 1 10 ]", 0},
		{"extra not visible", &machine.Pattern{Formals: xy, Ellipsis: true}, lookup("z"),
			set(map[string]machine.Value{"x": machine.Int(1), "z": machine.Int(3)}), false, "", machine.UnboundVar},
		{"rest bind", &machine.Pattern{Formals: xy, RestBind: "args", Ellipsis: true}, lookup("args"),
			set(map[string]machine.Value{"x": machine.Int(1), "z": machine.Int(3)}), false, "{ x = 1; z = 3; }", 0},
		{"default refers to formal", &machine.Pattern{Formals: []machine.Formal{
			{Name: "x"},
			{Name: "y", Default: addBody(lookup("x"), machine.Lit(machine.Int(1)))},
		}}, body, set(map[string]machine.Value{"x": machine.Int(1)}), false, "[ 1 2 ]", 0},
		{"default not evaluated if provided", &machine.Pattern{Formals: []machine.Formal{
			{Name: "x", Default: func(*machine.Env) (machine.Value, error) { return nil, errBoom }},
		}}, lookup("x"), set(map[string]machine.Value{"x": machine.Int(1)}), false, "1", 0},
		{"empty pattern", &machine.Pattern{}, machine.Lit(machine.True),
			machine.EmptyAttrset, true, "true", 0},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			th := &machine.Thread{StrictPatterns: c.strict}
			fn := machine.LambdaForPattern(th.NewEnv(), c.pattern, c.body)

			got, err := machine.Apply(fn, c.arg)
			var s string
			if err == nil {
				s, err = machine.Sprint(got)
			}
			if c.want == "" {
				requireKind(t, err, c.kind)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.want, s)
		})
	}
}

func TestPatternLambda_Errors(t *testing.T) {
	fn := machine.PatternLambda(machine.NewEnv("/"), "", []machine.Formal{{Name: "x"}}, lookup("x"))
	_, err := machine.Apply(fn, machine.EmptyAttrset)
	require.EqualError(t, err, "missing argument: function '{...}' called without required argument 'x'")

	_, err = machine.Apply(fn, machine.Int(1))
	require.EqualError(t, err, "type mismatch: function '{...}' expects a set argument but got a 'int'")

	fn = machine.PatternLambda(machine.NewEnv("/"), "all", nil, lookup("all"))
	require.Equal(t, "{...}@all", fn.Name())
}

func TestParamLambda(t *testing.T) {
	env := machine.NewEnv("/")

	// x: y: x + y
	add := machine.ParamLambda(env, "x", func(env *machine.Env) (machine.Value, error) {
		return machine.ParamLambda(env, "y", addBody(lookup("x"), lookup("y"))), nil
	})
	require.Equal(t, "x", add.Name())
	require.Equal(t, "lambda", add.Type())
	require.Equal(t, "<LAMBDA>", add.String())

	v, err := machine.Call(add, machine.Int(1), machine.Int(2))
	require.NoError(t, err)
	require.Equal(t, machine.Int(3), v)

	// partial application captures x
	inc, err := machine.Apply(add, machine.Int(1))
	require.NoError(t, err)
	for i := int64(0); i < 3; i++ {
		v, err := machine.Apply(inc, machine.Int(i))
		require.NoError(t, err)
		require.Equal(t, machine.Int(i+1), v)
	}

	// parameter hides the universe and the argument is not forced
	fn := machine.ParamLambda(env, "true", machine.Lit(machine.Int(1)))
	v, err = machine.Apply(fn, failing())
	require.NoError(t, err)
	require.Equal(t, machine.Int(1), v)

	fn = machine.ParamLambda(env, "true", lookup("true"))
	v, err = machine.Apply(fn, machine.Int(42))
	require.NoError(t, err)
	require.Equal(t, machine.Int(42), v)

	v, err = machine.Call(fn)
	require.NoError(t, err)
	require.Same(t, fn, v)
}

func TestApply_NotAFunction(t *testing.T) {
	_, err := machine.Apply(machine.Int(1), machine.Int(2))
	require.EqualError(t, err, "not a function: attempt to call something which is not a function but a 'int'")

	lazyFn := machine.NewThunk(nil, machine.Lit(machine.ParamLambda(nil, "x", lookup("x"))))
	v, err := machine.Apply(lazyFn, machine.String("a"))
	require.NoError(t, err)
	require.Equal(t, machine.String("a"), v)

	_, err = machine.Call(lazyFn, machine.Int(1), machine.Int(2))
	requireKind(t, err, machine.NotAFunction)
}
