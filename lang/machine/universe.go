package machine

// Universe defines the set of universal built-ins core to the language:
// true, false, null and the builtins attribute set, which holds typeOf and
// itself. It is the outermost frame of the shadowing scope of every root
// environment created by Thread.NewEnv, so that let and lambda bindings may
// hide them but with namespaces may not. It should not be modified.
var Universe = func() *Attrset {
	typeOf := ParamLambda(nil, "x", builtinTypeOf)
	builtins := MakeAttrset(map[string]Value{
		"typeOf": typeOf,
	})
	u := MakeAttrset(map[string]Value{
		"true":     True,
		"false":    False,
		"null":     Null,
		"builtins": builtins,
	})
	builtins.m.Put("builtins", builtins)
	return u
}()

// IsUniverse returns true if name is a universal built-in.
func IsUniverse(name string) bool {
	_, ok := Universe.Get(name)
	return ok
}

func builtinTypeOf(env *Env) (Value, error) {
	x, err := env.Lookup("x")
	if err != nil {
		return nil, err
	}
	t, err := TypeOf(x)
	if err != nil {
		return nil, err
	}
	return String(t), nil
}
