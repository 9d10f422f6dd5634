package cli

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show phase timings for operations."`
}

type Commands struct {
	Globals

	Check    CheckCmd    `cmd:"" help:"Parse, reconcile and verify a Wave ledger export."`
	Accounts AccountsCmd `cmd:"" help:"List per-account balances of a Wave ledger export."`
	Dump     DumpCmd     `cmd:"" help:"Pretty-print the intermediate representation of an export."`
}
