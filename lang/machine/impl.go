package machine

import (
	"reflect"

	"github.com/mna/nixrt/lang/token"
)

// The operators of the language. Each operator forces its operands, left
// operand first, only to the depth it needs, and operators that store values
// in a new container (update, concat) do not force the stored values.

// Unary applies a unary operator (MINUS or BANG) to its operand.
func Unary(op token.Token, x Value) (Value, error) {
	switch op {
	case token.MINUS:
		return Neg(x)
	case token.BANG:
		return Not(x)
	}
	return nil, evalErrorf(TypeMismatch, "unsupported unary operator %#v", op)
}

// Binary applies a binary operator to its operands. The attribute path
// operators (QUESTION and DOT) are not binary operators on values, use Has
// and Select instead.
func Binary(env *Env, op token.Token, l, r Value) (Value, error) {
	if op.IsRelational() {
		return Compare(op, l, r)
	}

	switch op {
	case token.PLUS:
		return Add(env, l, r)
	case token.MINUS:
		return Sub(l, r)
	case token.STAR:
		return Mul(l, r)
	case token.SLASH:
		return Div(l, r)
	case token.SLASHSLASH:
		return Update(l, r)
	case token.PLUSPLUS:
		return Concat(l, r)
	case token.ANDAND:
		return And(l, r)
	case token.PIPEPIPE:
		return Or(l, r)
	case token.ARROW:
		return Implication(l, r)
	}
	return nil, evalErrorf(TypeMismatch, "unsupported binary operator %#v", op)
}

// Compare applies a comparison operator to its operands. The operator must
// be one of EQEQ, BANGEQ, LT, LE, GT or GE.
func Compare(op token.Token, l, r Value) (Value, error) {
	var (
		res Bool
		err error
	)
	switch op {
	case token.EQEQ:
		res, err = Eq(l, r)
	case token.BANGEQ:
		res, err = Neq(l, r)
	case token.LT:
		res, err = Lt(l, r)
	case token.LE:
		res, err = Le(l, r)
	case token.GT:
		res, err = Gt(l, r)
	case token.GE:
		res, err = Ge(l, r)
	default:
		return nil, evalErrorf(TypeMismatch, "unsupported comparison operator %#v", op)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// force2 forces l then r.
func force2(l, r Value) (Value, Value, error) {
	x, err := Force(l)
	if err != nil {
		return nil, nil, err
	}
	y, err := Force(r)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// Neg implements unary minus on numbers.
func Neg(x Value) (Value, error) {
	v, err := Force(x)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case Int:
		return -v, nil
	case Float:
		return -v, nil
	}
	return nil, evalErrorf(TypeMismatch, "cannot negate a '%s'", v.Type())
}

// Add implements +:
//   - on integers, the result is an integer (wrapping around on overflow);
//   - on numbers, if at least one is a float, the result is a float;
//   - on strings, the result is the concatenation;
//   - on a path and a string, the string is appended to the path and the
//     result is normalised;
//   - on two paths, they are joined with a slash and normalised.
func Add(env *Env, l, r Value) (Value, error) {
	x, y, err := force2(l, r)
	if err != nil {
		return nil, err
	}

	switch x := x.(type) {
	case Int:
		switch y := y.(type) {
		case Int:
			return x + y, nil
		case Float:
			return Float(x) + y, nil
		}
	case Float:
		switch y := y.(type) {
		case Float:
			return x + y, nil
		case Int:
			return x + Float(y), nil
		}
	case String:
		if y, ok := y.(String); ok {
			return x + y, nil
		}
	case Path:
		switch y := y.(type) {
		case String:
			return ToPath(env, x.String()+string(y)), nil
		case Path:
			return ToPath(env, joinPaths(x.String(), y.String())), nil
		}
	}
	return nil, evalErrorf(TypeMismatch, "cannot add '%s' to '%s'", x.Type(), y.Type())
}

// Sub implements - on numbers.
func Sub(l, r Value) (Value, error) {
	x, y, err := force2(l, r)
	if err != nil {
		return nil, err
	}

	switch x := x.(type) {
	case Int:
		switch y := y.(type) {
		case Int:
			return x - y, nil
		case Float:
			return Float(x) - y, nil
		}
	case Float:
		switch y := y.(type) {
		case Float:
			return x - y, nil
		case Int:
			return x - Float(y), nil
		}
	}
	return nil, evalErrorf(TypeMismatch, "cannot subtract '%s' and '%s'", x.Type(), y.Type())
}

// Mul implements * on numbers.
func Mul(l, r Value) (Value, error) {
	x, y, err := force2(l, r)
	if err != nil {
		return nil, err
	}

	switch x := x.(type) {
	case Int:
		switch y := y.(type) {
		case Int:
			return x * y, nil
		case Float:
			return Float(x) * y, nil
		}
	case Float:
		switch y := y.(type) {
		case Float:
			return x * y, nil
		case Int:
			return x * Float(y), nil
		}
	}
	return nil, evalErrorf(TypeMismatch, "cannot multiply '%s' and '%s'", x.Type(), y.Type())
}

// Div implements / on numbers. Division of integers truncates toward zero
// and fails with DivByZero if the divisor is 0, division involving a float
// follows IEEE-754.
func Div(l, r Value) (Value, error) {
	x, y, err := force2(l, r)
	if err != nil {
		return nil, err
	}

	switch x := x.(type) {
	case Int:
		switch y := y.(type) {
		case Int:
			if y == 0 {
				return nil, evalErrorf(DivByZero, "integer division by zero")
			}
			return x / y, nil
		case Float:
			return Float(x) / y, nil
		}
	case Float:
		switch y := y.(type) {
		case Float:
			return x / y, nil
		case Int:
			return x / Float(y), nil
		}
	}
	return nil, evalErrorf(TypeMismatch, "cannot divide '%s' and '%s'", x.Type(), y.Type())
}

func asBool(x Value) (Bool, error) {
	v, err := Force(x)
	if err != nil {
		return false, err
	}
	b, ok := v.(Bool)
	if !ok {
		return false, evalErrorf(TypeMismatch, "value is a '%s' while a boolean was expected", v.Type())
	}
	return b, nil
}

// Not implements ! on a boolean.
func Not(x Value) (Value, error) {
	b, err := asBool(x)
	if err != nil {
		return nil, err
	}
	return !b, nil
}

// And implements &&. The right operand is not forced if the left one is
// false.
func And(l, r Value) (Value, error) {
	x, err := asBool(l)
	if err != nil || !x {
		return x, err
	}
	return asBoolValue(r)
}

// Or implements ||. The right operand is not forced if the left one is true.
func Or(l, r Value) (Value, error) {
	x, err := asBool(l)
	if err != nil || x {
		return x, err
	}
	return asBoolValue(r)
}

// Implication implements ->. The right operand is not forced if the left
// one is false.
func Implication(l, r Value) (Value, error) {
	x, err := asBool(l)
	if err != nil {
		return nil, err
	}
	if !x {
		return True, nil
	}
	return asBoolValue(r)
}

func asBoolValue(x Value) (Value, error) {
	b, err := asBool(x)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Eq implements ==. Integers and floats compare by numeric value, strings,
// lists and attribute sets compare structurally and values of different types
// are not equal (it never fails because of the types of the operands).
func Eq(l, r Value) (Bool, error) {
	x, y, err := force2(l, r)
	if err != nil {
		return false, err
	}

	switch x := x.(type) {
	case Int:
		switch y := y.(type) {
		case Int:
			return x == y, nil
		case Float:
			return Float(x) == y, nil
		}
		return false, nil
	case Float:
		switch y := y.(type) {
		case Float:
			return x == y, nil
		case Int:
			return x == Float(y), nil
		}
		return false, nil
	case Path:
		if y, ok := y.(Path); ok {
			return x.String() == y.String(), nil
		}
		return false, nil
	}

	if !sameType(x, y) {
		return false, nil
	}
	if xe, ok := x.(HasEqual); ok {
		eq, err := xe.Equals(y)
		return Bool(eq), err
	}
	// use identity comparison
	return x == y, nil
}

// Neq implements !=, the negation of Eq.
func Neq(l, r Value) (Bool, error) {
	eq, err := Eq(l, r)
	return !eq, err
}

// Lt implements <. Numbers compare by numeric value, strings
// lexicographically and lists element-wise, any other operands fail with a
// TypeMismatch error.
func Lt(l, r Value) (Bool, error) {
	x, y, err := force2(l, r)
	if err != nil {
		return false, err
	}
	return less(x, y)
}

// Le implements <=, defined as !(r < l).
func Le(l, r Value) (Bool, error) {
	x, y, err := force2(l, r)
	if err != nil {
		return false, err
	}
	lt, err := less(y, x)
	return !lt, err
}

// Gt implements >, defined as r < l.
func Gt(l, r Value) (Bool, error) {
	x, y, err := force2(l, r)
	if err != nil {
		return false, err
	}
	return less(y, x)
}

// Ge implements >=, defined as !(l < r).
func Ge(l, r Value) (Bool, error) {
	x, y, err := force2(l, r)
	if err != nil {
		return false, err
	}
	lt, err := less(x, y)
	return !lt, err
}

// less compares forced values.
func less(x, y Value) (Bool, error) {
	if xo, ok := x.(Ordered); ok && sameType(x, y) {
		c, err := xo.Cmp(y)
		return c < 0, err
	}

	switch x := x.(type) {
	case Int:
		if y, ok := y.(Float); ok {
			return Float(x) < y, nil
		}
	case Float:
		switch y := y.(type) {
		case Float:
			return x < y, nil
		case Int:
			return x < Float(y), nil
		}
	case *List:
		if y, ok := y.(*List); ok {
			return listLess(x, y)
		}
	}
	return false, evalErrorf(TypeMismatch, "cannot compare a '%s' with a '%s'", x.Type(), y.Type())
}

// listLess compares the lists element-wise: the first pair of elements where
// one is less than the other decides the result, otherwise the shorter list is
// less. A pair of identical booleans or of nulls is skipped rather than
// failing the comparison.
func listLess(x, y *List) (Bool, error) {
	n := min(x.Len(), y.Len())
	for i := 0; i < n; i++ {
		a, b, err := force2(x.elems[i], y.elems[i])
		if err != nil {
			return false, err
		}
		if isContinuePair(a, b) {
			continue
		}

		lt, err := less(a, b)
		if err != nil {
			return false, err
		}
		if lt {
			return true, nil
		}
		if gt, _ := less(b, a); gt {
			return false, nil
		}
	}
	return x.Len() < y.Len(), nil
}

func isContinuePair(a, b Value) bool {
	switch a := a.(type) {
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case NullType:
		_, ok := b.(NullType)
		return ok
	}
	return false
}

func sameType(x, y Value) bool {
	return reflect.TypeOf(x) == reflect.TypeOf(y)
}

// Update implements //, the shallow right-biased union of two attribute
// sets. The values are not forced.
func Update(l, r Value) (Value, error) {
	x, y, err := force2(l, r)
	if err != nil {
		return nil, err
	}
	xs, xok := x.(*Attrset)
	ys, yok := y.(*Attrset)
	if !xok || !yok {
		return nil, evalErrorf(TypeMismatch, "cannot apply operator '//' on '%s' and '%s'", x.Type(), y.Type())
	}
	return xs.update(ys), nil
}

// Concat implements ++, the concatenation of two lists. The operands are not
// modified and the elements are not forced.
func Concat(l, r Value) (Value, error) {
	x, y, err := force2(l, r)
	if err != nil {
		return nil, err
	}
	xl, xok := x.(*List)
	yl, yok := y.(*List)
	if !xok || !yok {
		return nil, evalErrorf(TypeMismatch, "cannot concatenate '%s' and '%s'", x.Type(), y.Type())
	}

	elems := make([]Value, 0, xl.Len()+yl.Len())
	elems = append(elems, xl.elems...)
	elems = append(elems, yl.elems...)
	return NewList(elems), nil
}

// Has implements the ? operator: it returns true if the attribute path
// exists in v. It never fails because v or an intermediate value is not an
// attribute set, it returns false instead.
func Has(v Value, path []Value) (Bool, error) {
	cur := v
	for _, c := range path {
		x, err := Force(cur)
		if err != nil {
			return false, err
		}
		set, ok := x.(*Attrset)
		if !ok {
			return false, nil
		}
		name, ok, err := forceAttrName(c)
		if err != nil || !ok {
			return false, err
		}
		if cur, ok = set.Get(name); !ok {
			return false, nil
		}
	}
	return true, nil
}

// Select implements the . operator: it returns the (possibly lazy) value at
// the attribute path in v. If the path does not exist, it returns def if it
// is not nil, otherwise it fails with a MissingAttr error (or TypeMismatch if
// an intermediate value is not an attribute set).
func Select(v Value, path []Value, def Value) (Value, error) {
	cur := v
	for i, c := range path {
		x, err := Force(cur)
		if err != nil {
			return nil, err
		}
		set, ok := x.(*Attrset)
		if !ok {
			if def != nil {
				return def, nil
			}
			return nil, evalErrorf(TypeMismatch, "value is a '%s' while a set was expected", x.Type())
		}
		name, ok, err := forceAttrName(c)
		if err != nil {
			return nil, err
		}
		if ok {
			cur, ok = set.Get(name)
		}
		if !ok {
			if def != nil {
				return def, nil
			}
			names, _ := pathNames(path[:i+1])
			return nil, evalErrorf(MissingAttr, "attribute '%s' missing", formatPath(names))
		}
	}
	return cur, nil
}

func forceAttrName(c Value) (string, bool, error) {
	v, err := Force(c)
	if err != nil {
		return "", false, err
	}
	return asAttrName(v)
}

func pathNames(path []Value) ([]string, error) {
	names := make([]string, 0, len(path))
	for _, c := range path {
		name, ok, err := forceAttrName(c)
		if err != nil {
			return nil, err
		}
		if !ok {
			name = "null"
		}
		names = append(names, name)
	}
	return names, nil
}

// Interpolate returns the string to insert in an interpolated string for v.
// Only strings can be interpolated, other values fail with a CoercionError.
func Interpolate(v Value) (String, error) {
	x, err := Force(v)
	if err != nil {
		return "", err
	}
	s, ok := x.(String)
	if !ok {
		return "", evalErrorf(CoercionError, "cannot coerce a '%s' to a string", x.Type())
	}
	return s, nil
}
