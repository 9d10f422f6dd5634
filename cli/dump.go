package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/wavecount-dev/wavecount/ledger"
	"github.com/wavecount-dev/wavecount/loader"
)

type DumpCmd struct {
	File   FileOrStdin `help:"Export filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Merged bool        `help:"Dump the reconciled ledger instead of the raw assembly."`
}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()
	ldr := loader.New()

	var result *loader.Result
	var err error
	if cmd.File.IsStdin() {
		result, err = ldr.LoadBytes(runCtx, cmd.File.Filename, cmd.File.Contents)
	} else {
		result, err = ldr.Load(runCtx, cmd.File.AbsoluteFilename())
	}
	if err != nil {
		var source []byte
		if result != nil {
			source = result.Source
		}
		renderer := NewErrorRenderer(source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		return NewCommandError(1)
	}

	assembled, err := ledger.Assemble(result.Document)
	if err != nil {
		renderer := NewErrorRenderer(result.Source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		return NewCommandError(1)
	}

	dumped := assembled
	if cmd.Merged {
		dumped = assembled.Reconcile()
		dumped.SortByDate()
	}

	repr.New(ctx.Stdout, repr.Indent("  ")).Println(dumped)
	return nil
}
