package clicommand

import (
	"github.com/buildkite/bkyml/cliconfig"
	"github.com/buildkite/bkyml/internal/step"
	"github.com/buildkite/bkyml/logger"
	"github.com/urfave/cli"
)

const envHelpDescription = `Usage:

   bkyml env --var KEY VALUE [--var KEY VALUE ...]

Description:
   Prints a pipeline-wide env block. Variables keep the order they were given
   in. A key given twice keeps its first position and its last value.

Example:

   $ bkyml env --var NODE_ENV test --var CI true
   env:
     NODE_ENV: test
     CI: "true"`

type EnvConfig struct {
	Vars [][]string `flag:"var" nargs:"2" usage:"An environment variable, given as KEY VALUE (repeatable)"`
}

var EnvCommand = cli.Command{
	Name:            "env",
	Usage:           "Prints a pipeline-wide env block",
	Description:     envHelpDescription,
	Flags:           cliconfig.Flags(&EnvConfig{}),
	SkipFlagParsing: true,
	Action: NewStepAction(StepAction[EnvConfig]{
		Input: func(_ logger.Logger, cfg *EnvConfig) (step.Builder, error) {
			return step.EnvInput{Vars: keyValues(cfg.Vars)}, nil
		},
	}),
}
