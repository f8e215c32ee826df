package clicommand

import (
	"github.com/buildkite/bkyml/cliconfig"
	"github.com/buildkite/bkyml/internal/step"
	"github.com/buildkite/bkyml/logger"
	"github.com/urfave/cli"
)

const stepsHelpDescription = `Usage:

   bkyml steps

Description:
   Prints the "steps:" header that the step fragments printed by the other
   subcommands go below.

Example:

   $ bkyml steps > pipeline.yml
   $ bkyml command --command "make test" >> pipeline.yml`

type StepsConfig struct{}

var StepsCommand = cli.Command{
	Name:            "steps",
	Usage:           "Prints the steps header",
	Description:     stepsHelpDescription,
	Flags:           cliconfig.Flags(&StepsConfig{}),
	SkipFlagParsing: true,
	Action: NewStepAction(StepAction[StepsConfig]{
		Input: func(logger.Logger, *StepsConfig) (step.Builder, error) {
			return step.StepsInput{}, nil
		},
	}),
}
