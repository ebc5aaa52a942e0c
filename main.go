package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/Versatly/zoho-mail-cli/internal/cli"
	"github.com/Versatly/zoho-mail-cli/internal/output"
)

var (
	version = "dev"
)

func main() {
	cliInstance := &cli.CLI{}
	parser := kong.Must(cliInstance,
		kong.Name("zmail"),
		kong.Description("Zoho Mail CLI driven through an OAuth-proxy helper"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	kongplete.Complete(parser,
		kongplete.WithPredictor("file", complete.PredictFiles("*")),
	)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(); err != nil {
		if cliErr, ok := err.(*output.CLIError); ok {
			formatter := output.New("compact")
			formatter.PrintError(err)
			if cliErr.Hint != "" {
				formatter.PrintHint(cliErr.Hint)
			}
			os.Exit(output.ExitError)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(output.ExitError)
	}
}
