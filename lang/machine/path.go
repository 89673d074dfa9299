package machine

import (
	"strings"
)

// Path is the type of a filesystem path value. A Path is always absolute and
// syntactically normalised: it has no "." segment, ".." segments remove the
// previous segment and adjacent slashes are collapsed. The zero value is the
// root path.
type Path struct {
	p string
}

var _ Value = Path{}

// NewPath returns the normalised Path for s. A relative s is interpreted as
// relative to the root directory, use ToPath to resolve it against the
// script directory instead.
func NewPath(s string) Path {
	return Path{p: normalizePath(s)}
}

// ToPath returns the normalised Path for s. If s is relative, it is joined to
// the script directory of env before being normalised.
func ToPath(env *Env, s string) Path {
	if !isAbsPath(s) {
		s = joinPaths(env.ScriptDir(), s)
	}
	return NewPath(s)
}

func (p Path) String() string {
	if p.p == "" {
		return "/"
	}
	return p.p
}

func (p Path) Type() string { return "path" }

func isAbsPath(s string) bool {
	return strings.HasPrefix(s, "/")
}

func joinPaths(base, s string) string {
	return base + "/" + s
}

// normalizePath splits s on slashes, drops empty and "." segments, pops the
// previous segment on ".." and joins the result with single slashes after a
// leading slash.
func normalizePath(s string) string {
	segs := strings.Split(s, "/")
	norm := make([]string, 0, len(segs))
	for _, seg := range segs {
		switch seg {
		case "", ".":
		case "..":
			if len(norm) > 0 {
				norm = norm[:len(norm)-1]
			}
		default:
			norm = append(norm, seg)
		}
	}
	return "/" + strings.Join(norm, "/")
}
