package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/nixrt/lang/machine"
)

func (c *Cmd) Topath(ctx context.Context, stdio mainer.Stdio, args []string) error {
	dir := c.ScriptDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return printError(stdio, err)
		}
		dir = wd
	}
	return ToPaths(ctx, stdio, dir, args...)
}

// ToPaths prints each path as a normalised path value, relative paths being
// resolved against scriptDir.
func ToPaths(ctx context.Context, stdio mainer.Stdio, scriptDir string, paths ...string) error {
	th := &machine.Thread{Name: "topath", ScriptDir: scriptDir}
	env := th.NewEnv()
	p := machine.Printer{Output: stdio.Stdout}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return printError(stdio, err)
		}
		if path == "" {
			return printError(stdio, fmt.Errorf("invalid empty path"))
		}
		if err := p.Print(machine.ToPath(env, path)); err != nil {
			return printError(stdio, err)
		}
	}
	return nil
}
