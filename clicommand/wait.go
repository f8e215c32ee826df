package clicommand

import (
	"github.com/buildkite/bkyml/cliconfig"
	"github.com/buildkite/bkyml/internal/step"
	"github.com/buildkite/bkyml/logger"
	"github.com/urfave/cli"
)

const waitHelpDescription = `Usage:

   bkyml wait [--continue-on-failure]

Description:
   Prints a wait step, which waits for all previous steps to finish before
   the build continues.

Example:

   $ bkyml wait --continue-on-failure
     - wait:
       continue_on_failure: true`

type WaitConfig struct {
	ContinueOnFailure bool `flag:"continue-on-failure" usage:"Continue even if previous steps failed"`
}

var WaitCommand = cli.Command{
	Name:            "wait",
	Usage:           "Prints a wait step",
	Description:     waitHelpDescription,
	Flags:           cliconfig.Flags(&WaitConfig{}),
	SkipFlagParsing: true,
	Action: NewStepAction(StepAction[WaitConfig]{
		Input: func(_ logger.Logger, cfg *WaitConfig) (step.Builder, error) {
			return step.WaitInput{ContinueOnFailure: cfg.ContinueOnFailure}, nil
		},
	}),
}
