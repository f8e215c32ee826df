package clicommand

import (
	"github.com/buildkite/bkyml/cliconfig"
	"github.com/buildkite/bkyml/internal/step"
	"github.com/buildkite/bkyml/logger"
	"github.com/urfave/cli"
)

const blockHelpDescription = `Usage:

   bkyml block LABEL [options]

Description:
   Prints a block step, which pauses the build until it is unblocked.

   A --field-text takes five values: key, label, hint, required (true or
   false) and default. A --field-select takes the same five values followed
   by one or more value=label options. Empty strings leave hint and default
   out. Text fields are printed before select fields.

Example:

   $ bkyml block ":rocket: Release" --prompt "Fill out the details" \
       --field-select stream Stream "" true beta beta=Beta stable=Stable`

type BlockConfig struct {
	Label        string     `arg:"0"`
	Prompt       string     `flag:"prompt" usage:"The instructions shown when unblocking"`
	Branches     []string   `flag:"branches" usage:"Branch patterns the step runs on"`
	TextFields   [][]string `flag:"field-text" usage:"A text field: KEY LABEL HINT REQUIRED DEFAULT (repeatable)"`
	SelectFields [][]string `flag:"field-select" usage:"A select field: KEY LABEL HINT REQUIRED DEFAULT VALUE=LABEL... (repeatable)"`
}

var BlockCommand = cli.Command{
	Name:            "block",
	Usage:           "Prints a block step",
	ArgsUsage:       "LABEL",
	Description:     blockHelpDescription,
	Flags:           cliconfig.Flags(&BlockConfig{}),
	SkipFlagParsing: true,
	Action:          NewStepAction(StepAction[BlockConfig]{Input: blockInput}),
}

func blockInput(_ logger.Logger, cfg *BlockConfig) (step.Builder, error) {
	in := step.BlockInput{
		Label:    cfg.Label,
		Prompt:   cfg.Prompt,
		Branches: cfg.Branches,
	}

	for _, tokens := range cfg.TextFields {
		f, err := step.ParseTextField(tokens)
		if err != nil {
			return nil, err
		}
		in.Fields = append(in.Fields, f)
	}
	for _, tokens := range cfg.SelectFields {
		f, err := step.ParseSelectField(tokens)
		if err != nil {
			return nil, err
		}
		in.Fields = append(in.Fields, f)
	}

	return in, nil
}
