package clicommand

import (
	"fmt"
	"os"

	"github.com/buildkite/bkyml/version"
	"github.com/urfave/cli"
)

const appHelpDescription = `Generates fragments of a Buildkite pipeline.yml, one subcommand per
fragment. Step fragments are indented to go below the "steps:" header:

   $ bkyml comment "Generated by bkyml" > pipeline.yml
   $ bkyml steps >> pipeline.yml
   $ bkyml command --command "make test" >> pipeline.yml
   $ bkyml wait >> pipeline.yml`

// NewApp returns the bkyml app, writing documents to stdout and diagnostics
// to stderr.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bkyml"
	app.Usage = "Generate pipeline YAML for Buildkite"
	app.Description = appHelpDescription
	app.Version = version.Version()
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	// --version is one of GlobalFlags, so that -v can mean --verbose.
	app.HideVersion = true

	app.Flags = GlobalFlags
	app.Commands = BkymlCommands
	app.Action = appAction

	return app
}

func appAction(c *cli.Context) error {
	if c.Bool("version") {
		fmt.Fprintf(c.App.Writer, "%s %s\n", c.App.Name, c.App.Version)
		return nil
	}

	if c.NArg() > 0 {
		return NewExitError(ExitUsage, fmt.Errorf("unknown command %q. See: `%s --help`", c.Args().First(), c.App.Name))
	}

	return cli.ShowAppHelp(c)
}
