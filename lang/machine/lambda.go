package machine

// A Formal is a parameter of a pattern lambda, with an optional default
// value (a nil Default means the parameter is required).
type Formal struct {
	Name    string
	Default Body
}

// A Pattern describes the parameters of a pattern lambda: the declared
// formals, the optional name bound to the whole argument (the "@" binding)
// and whether undeclared attributes are explicitly allowed (the "..."
// ellipsis).
type Pattern struct {
	Formals  []Formal
	RestBind string
	Ellipsis bool
}

// A Lambda is a closure: a body with the environment where it was defined.
// It is either a simple lambda with a single parameter name, or a pattern
// lambda that destructures an attribute set argument.
type Lambda struct {
	env     *Env
	param   string
	pattern *Pattern
	body    Body
}

var _ Value = (*Lambda)(nil)

// ParamLambda returns a simple lambda that binds its argument to name.
func ParamLambda(env *Env, name string, body Body) *Lambda {
	return &Lambda{env: env, param: name, body: body}
}

// PatternLambda returns a pattern lambda. If restBind is not empty, the
// whole argument is bound to that name.
func PatternLambda(env *Env, restBind string, formals []Formal, body Body) *Lambda {
	return LambdaForPattern(env, &Pattern{Formals: formals, RestBind: restBind}, body)
}

// LambdaForPattern returns a pattern lambda for the complete pattern
// description p, which must not be modified afterwards.
func LambdaForPattern(env *Env, p *Pattern, body Body) *Lambda {
	return &Lambda{env: env, pattern: p, body: body}
}

func (fn *Lambda) String() string { return "<LAMBDA>" }
func (fn *Lambda) Type() string   { return "lambda" }

// Name returns a short description of the lambda's parameters.
func (fn *Lambda) Name() string {
	if fn.pattern == nil {
		return fn.param
	}
	s := "{...}"
	if fn.pattern.RestBind != "" {
		s += "@" + fn.pattern.RestBind
	}
	return s
}

// Apply calls fn with arg. fn is forced and must be a lambda, arg is forced
// only if fn is a pattern lambda.
func Apply(fn, arg Value) (Value, error) {
	v, err := Force(fn)
	if err != nil {
		return nil, err
	}
	lam, ok := v.(*Lambda)
	if !ok {
		return nil, evalErrorf(NotAFunction, "attempt to call something which is not a function but a '%s'", v.Type())
	}
	return lam.call(arg)
}

func (fn *Lambda) call(arg Value) (Value, error) {
	if fn.pattern == nil {
		return fn.body(fn.env.WithShadow(binding{name: fn.param, val: arg}))
	}

	v, err := Force(arg)
	if err != nil {
		return nil, err
	}
	args, ok := v.(*Attrset)
	if !ok {
		return nil, evalErrorf(TypeMismatch, "function '%s' expects a set argument but got a '%s'", fn.Name(), v.Type())
	}

	p := fn.pattern
	if th := fn.env.Thread(); th != nil && th.StrictPatterns && !p.Ellipsis {
		if err := checkUnexpectedArgs(p, args); err != nil {
			return nil, err
		}
	}

	// defaults are evaluated in the environment of the body, so that they can
	// refer to the other formals
	vars := newAttrset(len(p.Formals) + 1)
	callEnv := fn.env.WithShadow(vars)
	for _, f := range p.Formals {
		if av, ok := args.Get(f.Name); ok {
			vars.m.Put(f.Name, av)
			continue
		}
		if f.Default == nil {
			return nil, evalErrorf(MissingArg, "function '%s' called without required argument '%s'", fn.Name(), f.Name)
		}
		vars.m.Put(f.Name, NewThunk(callEnv, f.Default))
	}
	if p.RestBind != "" {
		vars.m.Put(p.RestBind, args)
	}
	return fn.body(callEnv)
}

func checkUnexpectedArgs(p *Pattern, args *Attrset) error {
	declared := make(map[string]bool, len(p.Formals))
	for _, f := range p.Formals {
		declared[f.Name] = true
	}
	for _, k := range args.Keys() {
		if !declared[k] {
			return evalErrorf(UnexpectedArg, "function called with unexpected argument '%s'", k)
		}
	}
	return nil
}

// Call is a convenience wrapper around Apply for curried application of fn
// to multiple arguments.
func Call(fn Value, args ...Value) (Value, error) {
	res := fn
	for _, arg := range args {
		v, err := Apply(res, arg)
		if err != nil {
			return nil, err
		}
		res = v
	}
	return res, nil
}
