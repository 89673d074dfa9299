// Command nixrt is the inspection tool of the Nix value runtime. It prints
// the universal built-ins available to every evaluation and resolves paths
// the same way path literals are resolved by the runtime.
package main

import (
	"os"

	"github.com/mna/mainer"
	"github.com/mna/nixrt/internal/maincmd"
)

var (
	// placeholder values, replaced on build
	version   = "{v}" // must be N.N[.N]
	buildDate = "{d}" // must be YYYY-mm-DD
)

func main() {
	c := maincmd.Cmd{BuildVersion: version, BuildDate: buildDate}
	code := c.Main(os.Args, mainer.CurrentStdio())
	os.Exit(int(code))
}
