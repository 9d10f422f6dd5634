package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/wavecount-dev/wavecount/ledger"
)

type AccountsCmd struct {
	File   FileOrStdin `help:"Export filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Format string      `help:"Output format." enum:"text,json,yaml" default:"text"`
}

// accountReport is the serialized shape of one account's balances.
type accountReport struct {
	Name     string `json:"name" yaml:"name"`
	Currency string `json:"currency" yaml:"currency"`
	Start    string `json:"start_balance" yaml:"start_balance"`
	End      string `json:"end_balance" yaml:"end_balance"`
}

func (cmd *AccountsCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	merged, result, err := runPipeline(context.Background(), &cmd.File)
	if err != nil {
		var source []byte
		if result != nil {
			source = result.Source
		} else {
			source = cmd.File.Contents
		}
		renderer := NewErrorRenderer(source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		return NewCommandError(1)
	}

	reports := accountReports(merged)

	switch cmd.Format {
	case "json":
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(ctx.Stdout, string(data))

	case "yaml":
		data, err := yaml.Marshal(reports)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(ctx.Stdout, string(data))

	default:
		for _, report := range reports {
			_, _ = fmt.Fprintf(ctx.Stdout, "%-40s %s  %s -> %s\n",
				report.Name, report.Currency, report.Start, report.End)
		}
	}

	return nil
}

func accountReports(l *ledger.Ledger) []accountReport {
	reports := make([]accountReport, 0, len(l.Accounts))
	for _, name := range l.AccountNames() {
		balance := l.Accounts[name]
		reports = append(reports, accountReport{
			Name:     name,
			Currency: balance.Currency,
			Start:    balance.Start.Ledger.String(),
			End:      balance.End.Ledger.String(),
		})
	}
	return reports
}
