package maincmd

import (
	"context"

	"github.com/mna/mainer"
	"github.com/mna/nixrt/lang/machine"
)

func (c *Cmd) Builtins(ctx context.Context, stdio mainer.Stdio, args []string) error {
	p := machine.Printer{Output: stdio.Stdout}
	return printError(stdio, p.Print(machine.Universe))
}
