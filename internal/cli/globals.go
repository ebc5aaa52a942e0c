package cli

import (
	"os"

	"golang.org/x/term"
)

// Globals holds global flags available to all commands
type Globals struct {
	Region      string `help:"Zoho region domain" default:"" enum:"zoho.com,zoho.eu,zoho.in,zoho.com.au,zoho.jp," env:"ZMAIL_REGION"`
	Output      string `help:"Output format" default:"auto" enum:"json,table,compact,auto" short:"o" env:"ZMAIL_OUTPUT"`
	JSON        bool   `help:"Shorthand for --output=json" env:"ZMAIL_JSON"`
	Debug       bool   `help:"Verbose request logging to stderr" env:"ZMAIL_DEBUG"`
	ResultsOnly bool   `help:"Strip JSON envelope, return data array only" env:"ZMAIL_RESULTS_ONLY"`
	Force       bool   `help:"Skip confirmation for destructive operations" env:"ZMAIL_FORCE"`
	Helper      string `help:"Path to the OAuth helper binary" default:"pdauth" env:"ZMAIL_HELPER" predictor:"file"`
	Legacy      bool   `help:"Drive an old send-only helper build" env:"ZMAIL_LEGACY"`
}

// ApplyOutputDefault fills in the configured default output mode when the
// flag was left at "auto". An explicit --output or --json always wins.
func (g *Globals) ApplyOutputDefault(configured string) {
	if g.Output == "auto" && configured != "" {
		g.Output = configured
	}
}

// ResolvedOutput returns the effective output mode.
// "auto" detects TTY: if stdout is a TTY -> table, else -> compact.
func (g *Globals) ResolvedOutput() string {
	if g.JSON {
		return "json"
	}
	if g.Output != "auto" {
		return g.Output
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "table"
	}

	return "compact"
}
