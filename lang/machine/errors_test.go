package machine_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mna/nixrt/lang/machine"
	"github.com/stretchr/testify/require"
)

func TestErrorKind_String(t *testing.T) {
	for k := machine.UnknownError; k <= machine.DivByZero; k++ {
		require.NotContains(t, k.String(), "invalid", "kind %d", k)
	}
	require.Equal(t, "<invalid ErrorKind 200>", machine.ErrorKind(200).String())
}

func TestEvalError(t *testing.T) {
	_, err := machine.Select(machine.EmptyAttrset, []machine.Value{machine.String("a")}, nil)
	require.EqualError(t, err, "missing attribute: attribute 'a' missing")

	wrapped := fmt.Errorf("at line 1: %w", err)
	require.ErrorIs(t, wrapped, machine.ErrKind(machine.MissingAttr))
	require.NotErrorIs(t, wrapped, machine.ErrKind(machine.TypeMismatch))
	require.ErrorIs(t, wrapped, &machine.EvalError{Kind: machine.MissingAttr, Msg: "attribute 'a' missing"})
	require.NotErrorIs(t, wrapped, &machine.EvalError{Kind: machine.MissingAttr, Msg: "attribute 'b' missing"})

	require.True(t, machine.IsKind(wrapped, machine.MissingAttr))
	require.False(t, machine.IsKind(wrapped, machine.UnboundVar))
	require.False(t, machine.IsKind(errors.New("x"), machine.UnknownError))

	var ee *machine.EvalError
	require.ErrorAs(t, wrapped, &ee)
	require.Equal(t, machine.MissingAttr, ee.Kind)

	require.Equal(t, "division by zero", (&machine.EvalError{Kind: machine.DivByZero}).Error())
}
