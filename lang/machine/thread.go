package machine

// DefaultMaxForceDepth is the maximum number of nested thunk forcings when
// Thread.MaxForceDepth is not set.
const DefaultMaxForceDepth = 10000

// A Thread holds the configuration and the state of an evaluation. Its zero
// value is ready to use. Evaluation is single-threaded: a Thread and all the
// values created through its environments must not be used concurrently.
type Thread struct {
	// Name is an optional name that describes the thread, mostly for debugging.
	Name string

	// ScriptDir is the absolute path of the directory of the script being
	// evaluated, relative paths are resolved against it. If empty, the root
	// directory is used. A relative ScriptDir is interpreted as relative to the
	// root directory.
	ScriptDir string

	// StrictPatterns makes pattern lambdas without an ellipsis fail with an
	// UnexpectedArg error when called with an attribute not declared in the
	// pattern. By default, extra attributes are accepted.
	StrictPatterns bool

	// MaxForceDepth limits the number of nested thunk forcings. If the limit is
	// reached, evaluation fails with an InfiniteRecursion error. A value <= 0
	// means DefaultMaxForceDepth.
	MaxForceDepth int

	scriptDir string
	depth     int
	maxDepth  int
	inited    bool
}

func (th *Thread) init() {
	// one-time initialization of thread
	if th.inited {
		return
	}
	th.inited = true
	th.scriptDir = normalizePath(th.ScriptDir)
	th.maxDepth = th.MaxForceDepth
	if th.maxDepth <= 0 {
		th.maxDepth = DefaultMaxForceDepth
	}
}

// NewEnv returns the root environment of the thread. Its shadowing scope
// only has the Universe frame and its non-shadowing scope is empty.
func (th *Thread) NewEnv() *Env {
	th.init()
	env := &Env{th: th}
	return env.WithShadow(Universe)
}

// Depth returns the current number of nested thunk forcings.
func (th *Thread) Depth() int {
	if th == nil {
		return 0
	}
	return th.depth
}

func (th *Thread) enter() error {
	if th == nil {
		return nil
	}
	th.init()
	if th.depth >= th.maxDepth {
		return evalErrorf(InfiniteRecursion, "stack overflow (possible infinite recursion)")
	}
	th.depth++
	return nil
}

func (th *Thread) leave() {
	if th == nil {
		return
	}
	th.depth--
}
