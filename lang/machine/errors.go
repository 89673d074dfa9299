package machine

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the category of an evaluation error.
type ErrorKind uint8

// List of error kinds reported by the machine.
const (
	UnknownError ErrorKind = iota
	TypeMismatch
	MissingAttr
	UnboundVar
	DuplicateAttr
	BadAttrName
	MissingArg
	UnexpectedArg
	NotAFunction
	CoercionError
	InfiniteRecursion
	DivByZero
)

var kindNames = [...]string{
	UnknownError:      "unknown error",
	TypeMismatch:      "type mismatch",
	MissingAttr:       "missing attribute",
	UnboundVar:        "unbound variable",
	DuplicateAttr:     "duplicate attribute",
	BadAttrName:       "bad attribute name",
	MissingArg:        "missing argument",
	UnexpectedArg:     "unexpected argument",
	NotAFunction:      "not a function",
	CoercionError:     "coercion error",
	InfiniteRecursion: "infinite recursion",
	DivByZero:         "division by zero",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("<invalid ErrorKind %d>", k)
	}
	return kindNames[k]
}

// EvalError is the error type of all failures raised by the machine. The
// message is a single line and refers to the types involved, never to source
// positions.
type EvalError struct {
	Kind ErrorKind
	Msg  string
}

func (e *EvalError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is reports whether target is an *EvalError of the same kind. A target with
// a non-empty message must also match the message.
func (e *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

// ErrKind returns an error value suitable as target for errors.Is that
// matches any *EvalError of kind k.
func ErrKind(k ErrorKind) error { return &EvalError{Kind: k} }

// IsKind returns true if err is or wraps an *EvalError of kind k.
func IsKind(err error, k ErrorKind) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Kind == k
	}
	return false
}

func evalErrorf(k ErrorKind, format string, args ...any) error {
	return &EvalError{Kind: k, Msg: fmt.Sprintf(format, args...)}
}
