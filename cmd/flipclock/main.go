// Command flipclock renders and runs flip digit countdowns.
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/go-drift/flipclock/cmd/flipclock/commands"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("flipclock"),
		kong.Description("Flip clock digits: render transition frames or run a terminal countdown."),
		kong.Vars{"version": commands.VersionString()},
		kong.UsageOnError(),
	)
	err := ctx.Run(&commands.Global{Logger: slog.Default(), Stdout: os.Stdout}, cli)
	ctx.FatalIfErrorf(err)
}
