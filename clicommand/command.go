package clicommand

import (
	"github.com/buildkite/bkyml/cliconfig"
	"github.com/buildkite/bkyml/internal/step"
	"github.com/buildkite/bkyml/logger"
	"github.com/urfave/cli"
)

const commandHelpDescription = `Usage:

   bkyml command --command STR... [options]

Description:
   Prints a command step. Every --command flag adds one or more commands; a
   single command is printed as a string and several as a list.

   Retry rules are given with --retry automatic or --retry manual followed by
   the options of that mode. --retry-automatic-tuple cannot be combined with
   --retry-automatic-exit-status or --retry-automatic-limit, and retry limits
   above 10 are lowered to 10.

Examples:

   $ bkyml command --command "make test" --label ":hammer: Tests" --parallelism 4
     - label: ":hammer: Tests"
       command: make test
       parallelism: 4

   $ bkyml command --command "make deploy" --retry automatic --retry-automatic-tuple 255 2 \
       --plugin docker#v5.9.0 image=golang:1.25`

type CommandConfig struct {
	Commands         [][]string                `flag:"command" usage:"One or more commands to run (repeatable)"`
	Label            string                    `flag:"label" usage:"The label shown for the step"`
	Branches         []string                  `flag:"branches" usage:"Branch patterns the step runs on"`
	Env              [][]string                `flag:"env" nargs:"2" usage:"An environment variable for the step, given as KEY VALUE (repeatable)"`
	Agents           [][]string                `flag:"agents" nargs:"2" usage:"An agent targeting rule, given as KEY VALUE (repeatable)"`
	ArtifactPaths    [][]string                `flag:"artifact-paths" usage:"Glob patterns of artifacts to upload (repeatable)"`
	Parallelism      *string                   `flag:"parallelism" usage:"How many copies of the step to run"`
	Concurrency      *string                   `flag:"concurrency" usage:"How many jobs of the concurrency group may run at once"`
	ConcurrencyGroup string                    `flag:"concurrency-group" usage:"The concurrency group the step belongs to"`
	TimeoutInMinutes *string                   `flag:"timeout-in-minutes" usage:"Minutes before the job is cancelled"`
	Skip             *cliconfig.OptionalString `flag:"skip" usage:"Skip the step: true, false, or a reason"`
	RetryConfig
	Plugins [][]string `flag:"plugin" usage:"A plugin followed by its key=value configuration (repeatable)"`
}

type RetryConfig struct {
	Retry                     string     `flag:"retry" usage:"Retry mode: automatic or manual"`
	RetryAutomaticExitStatus  *string    `flag:"retry-automatic-exit-status" usage:"The exit status to retry on, or *"`
	RetryAutomaticLimit       *string    `flag:"retry-automatic-limit" usage:"How many times to retry (at most 10)"`
	RetryAutomaticTuple       [][]string `flag:"retry-automatic-tuple" nargs:"2" usage:"An exit status and limit pair (repeatable)"`
	RetryManualAllowed        *string    `flag:"retry-manual-allowed" usage:"Whether the step may be retried manually: true or false"`
	RetryManualReason         *string    `flag:"retry-manual-reason" usage:"Why manual retries are not allowed"`
	RetryManualPermitOnPassed *string    `flag:"retry-manual-permit-on-passed" usage:"Whether a passed step may be retried: true or false"`
}

func (cfg RetryConfig) flags() step.RetryFlags {
	return step.RetryFlags{
		Mode:                 cfg.Retry,
		AutomaticExitStatus:  cfg.RetryAutomaticExitStatus,
		AutomaticLimit:       cfg.RetryAutomaticLimit,
		AutomaticTuples:      cfg.RetryAutomaticTuple,
		ManualAllowed:        cfg.RetryManualAllowed,
		ManualReason:         cfg.RetryManualReason,
		ManualPermitOnPassed: cfg.RetryManualPermitOnPassed,
	}
}

var CommandCommand = cli.Command{
	Name:            "command",
	Usage:           "Prints a command step",
	Description:     commandHelpDescription,
	Flags:           cliconfig.Flags(&CommandConfig{}),
	SkipFlagParsing: true,
	Action:          NewStepAction(StepAction[CommandConfig]{Input: commandInput}),
}

func commandInput(l logger.Logger, cfg *CommandConfig) (step.Builder, error) {
	in := step.CommandInput{
		Label:            cfg.Label,
		Commands:         cfg.Commands,
		Branches:         cfg.Branches,
		Env:              keyValues(cfg.Env),
		Agents:           keyValues(cfg.Agents),
		ArtifactPaths:    cfg.ArtifactPaths,
		ConcurrencyGroup: cfg.ConcurrencyGroup,
	}

	var err error
	if in.Parallelism, err = optionalPositiveInt("--parallelism", cfg.Parallelism); err != nil {
		return nil, err
	}
	if in.Concurrency, err = optionalPositiveInt("--concurrency", cfg.Concurrency); err != nil {
		return nil, err
	}
	if in.TimeoutInMinutes, err = optionalInt("--timeout-in-minutes", cfg.TimeoutInMinutes); err != nil {
		return nil, err
	}

	if cfg.Skip != nil {
		in.Skip = step.BoolOrString(cfg.Skip.Value)
	}

	if in.Retry, err = step.NewRetry(cfg.flags()); err != nil {
		return nil, err
	}
	if cfg.RetryAutomaticLimit != nil {
		if n, err := step.PositiveInt("--retry-automatic-limit", *cfg.RetryAutomaticLimit); err == nil && n > step.MaxRetryLimit {
			l.Warn("--retry-automatic-limit %d is more than Buildkite allows, using %d", n, step.MaxRetryLimit)
		}
	}

	if in.Plugins, err = step.ParsePlugins(cfg.Plugins); err != nil {
		return nil, err
	}

	return in, nil
}
