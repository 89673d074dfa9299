// Package machine implements the value runtime of the Nix expression
// language. A separate compiler lowers Nix source to calls against this
// package: it provides the universe of values, the operators, attribute-set
// construction and lookup, lazy evaluation through thunks, lexical scoping
// and function application.
//
// # Values
//
// A Value is one of Int, Float, Bool, NullType, String, Path, *List,
// *Attrset, *Lambda or *Thunk. A Thunk is never observable by the evaluated
// program: Force drives it to its non-thunk value, which is memoised. The
// containers (lists, attribute sets) store their elements lazily and the
// operators force their operands only to the depth they need, left operand
// first.
//
// # Scopes
//
// An Env holds two scope chains. The shadowing chain receives the bindings of
// let, rec and lambda parameters, where nearer bindings hide outer ones. The
// non-shadowing chain receives the namespaces introduced by with: a name is
// looked up there only if no shadowing frame defines it, and inner with
// namespaces take precedence over outer ones.
//
// # Errors
//
// All failures are reported as *EvalError values with a Kind that identifies
// the category of the error.
package machine

// Value is the interface implemented by any value manipulated by the machine.
type Value interface {
	// String returns the string representation of the value, in the syntax of
	// the language for the scalar values.
	String() string

	// Type returns the name of the type of the value as reported by typeOf.
	// For a *Thunk, the caller must force it first to get the type of its
	// value.
	Type() string
}

// An Ordered type is a type whose values are totally ordered: if x and y are
// of the same Ordered type, then x must be less than y, greater than y, or
// equal to y. The ordering operators (Lt, Le, Gt, Ge) use it when both
// operands have the same Ordered type.
type Ordered interface {
	Value
	// Cmp compares two values x and y of the same ordered type. It returns
	// negative if x < y, positive if x > y, and zero if the values are equal.
	//
	// Client code should not call this method. Instead, use Compare or the
	// ordering operators, which are defined for all pairs of operands.
	Cmp(y Value) (int, error)
}

// A HasEqual type is a compound type that defines its own structural
// equality. The y value is guaranteed to be of the same type as the receiver.
type HasEqual interface {
	Value
	Equals(y Value) (bool, error)
}

// A Binder resolves names to (possibly lazy) values. Scope frames of an Env
// are Binders.
type Binder interface {
	// Lookup returns the value bound to name, or false if the name is not
	// bound by this Binder. Resolving the name may require evaluation, in which
	// case an error may be returned.
	Lookup(name string) (Value, bool, error)
}
