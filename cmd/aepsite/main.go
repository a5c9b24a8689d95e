package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/aepsite/cmd/aepsite/commands"
	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("aepsite"),
		kong.Description("Generate the AEP documentation site from the AEP, linter and components sources."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	err := parser.Run(&commands.Global{Logger: slog.Default(), Out: os.Stdout}, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
