package machine

// An Env is the environment in which a Body is evaluated. It is persistent:
// extending a scope returns a new Env that shares its parent, the receiver is
// never modified.
type Env struct {
	th        *Thread
	shadow    *frame // let, rec and lambda parameters
	nonShadow *frame // with namespaces
}

// frame is a link in a scope chain, the innermost frame first.
type frame struct {
	vars   Binder
	parent *frame
}

// NewEnv returns the root environment of a new Thread with the provided
// script directory.
func NewEnv(scriptDir string) *Env {
	th := &Thread{ScriptDir: scriptDir}
	return th.NewEnv()
}

// Thread returns the thread that owns the environment. It returns nil for a
// nil Env.
func (e *Env) Thread() *Thread {
	if e == nil {
		return nil
	}
	return e.th
}

// ScriptDir returns the normalised absolute script directory used to resolve
// relative paths.
func (e *Env) ScriptDir() string {
	if e == nil || e.th == nil {
		return "/"
	}
	return e.th.scriptDir
}

// WithShadow returns a new Env with vars added as the innermost frame of the
// shadowing scope. Its bindings hide any binding of the same name in outer
// frames of both scopes.
func (e *Env) WithShadow(vars Binder) *Env {
	ne := e.clone()
	ne.shadow = &frame{vars: vars, parent: ne.shadow}
	return ne
}

// WithNonShadow returns a new Env with the attribute set added as the
// innermost frame of the non-shadowing scope. Its bindings are visible only if
// no frame of the shadowing scope binds the same name, but hide the bindings
// of outer non-shadowing frames.
func (e *Env) WithNonShadow(ns *Attrset) *Env {
	ne := e.clone()
	ne.nonShadow = &frame{vars: ns, parent: ne.nonShadow}
	return ne
}

// Lookup resolves name, first in the shadowing scope and then in the
// non-shadowing scope. The returned value may be lazy. It fails with an
// UnboundVar error if the name is not bound.
func (e *Env) Lookup(name string) (Value, error) {
	if e != nil {
		for _, fr := range [...]*frame{e.shadow, e.nonShadow} {
			for ; fr != nil; fr = fr.parent {
				v, ok, err := fr.vars.Lookup(name)
				if err != nil {
					return nil, err
				}
				if ok {
					return v, nil
				}
			}
		}
	}
	return nil, evalErrorf(UnboundVar, "undefined variable '%s'", name)
}

func (e *Env) clone() *Env {
	if e == nil {
		return &Env{}
	}
	ne := *e
	return &ne
}

// With implements the with expression: it forces ns to an attribute set,
// adds it to the non-shadowing scope and evaluates body in the resulting
// environment.
func With(env *Env, ns Value, body Body) (Value, error) {
	v, err := Force(ns)
	if err != nil {
		return nil, err
	}
	set, ok := v.(*Attrset)
	if !ok {
		return nil, evalErrorf(TypeMismatch, "value is '%s' while a set was expected", v.Type())
	}
	return body(env.WithNonShadow(set))
}

// Let implements the let expression: the entries are bound in a recursive
// attribute set that is added to the shadowing scope, and body is evaluated
// in the resulting environment.
func Let(env *Env, entries []Entry, body Body) (Value, error) {
	b := NewBuilder(env, entries, true)
	if err := b.Build(); err != nil {
		return nil, err
	}
	return body(b.Env())
}

// binding is a Binder for a single name, used for simple lambda parameters.
type binding struct {
	name string
	val  Value
}

func (b binding) Lookup(name string) (Value, bool, error) {
	if name == b.name {
		return b.val, true, nil
	}
	return nil, false, nil
}
