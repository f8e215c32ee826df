package clicommand

import (
	"github.com/buildkite/bkyml/cliconfig"
	"github.com/buildkite/bkyml/internal/step"
	"github.com/buildkite/bkyml/logger"
	"github.com/urfave/cli"
)

const commentHelpDescription = `Usage:

   bkyml comment STRING...

Description:
   Prints each string as a YAML comment. Strings containing line breaks
   become one comment line per line.

Example:

   $ bkyml comment "Generated by bkyml" "Do not edit"
   # Generated by bkyml
   # Do not edit`

type CommentConfig struct {
	Lines []string `arg:"*"`
}

var CommentCommand = cli.Command{
	Name:            "comment",
	Usage:           "Prints a YAML comment",
	ArgsUsage:       "STRING...",
	Description:     commentHelpDescription,
	Flags:           cliconfig.Flags(&CommentConfig{}),
	SkipFlagParsing: true,
	Action: NewStepAction(StepAction[CommentConfig]{
		Input: func(_ logger.Logger, cfg *CommentConfig) (step.Builder, error) {
			return step.CommentInput{Lines: cfg.Lines}, nil
		},
	}),
}
