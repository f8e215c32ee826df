// bkyml generates fragments of Buildkite pipeline YAML from the command line.
package main

import (
	"os"

	"github.com/buildkite/bkyml/clicommand"
)

func main() {
	app := clicommand.NewApp()
	err := app.Run(os.Args)
	os.Exit(clicommand.PrintMessageAndReturnExitCode(app.ErrWriter, err))
}
