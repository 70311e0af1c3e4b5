package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/prscrub/cmd/prscrub/commands"
	serrors "git.home.luguber.info/inful/prscrub/internal/errors"
	"git.home.luguber.info/inful/prscrub/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("prscrub"),
		kong.Description("Scrub machine-generated PR markdown: link @mentions without pinging and shorten GitHub issue/PR URLs."),
		kong.Vars{"version": fmt.Sprintf("prscrub %s (commit %s, built %s)", version.Version, version.GitCommit, version.BuildTime)},
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(global, &cli); err != nil {
		fmt.Fprintln(os.Stderr, serrors.FormatError(err, cli.Verbose))
		os.Exit(serrors.ExitCodeFor(err))
	}
}
