package clicommand

import (
	"github.com/buildkite/bkyml/cliconfig"
	"github.com/buildkite/bkyml/internal/step"
	"github.com/buildkite/bkyml/logger"
	"github.com/urfave/cli"
)

const triggerHelpDescription = `Usage:

   bkyml trigger PIPELINE [options]

Description:
   Prints a trigger step, which creates a build of another pipeline. The
   --build-* options describe that build.

Example:

   $ bkyml trigger deploy --label ":rocket: Deploy" --async --build-branch main --build-env STAGE prod
     - trigger: deploy
       label: ":rocket: Deploy"
       async: true
       build:
         branch: main
         env:
           STAGE: prod`

type TriggerConfig struct {
	Pipeline      string     `arg:"0"`
	Label         string     `flag:"label" usage:"The label shown for the step"`
	Async         bool       `flag:"async" usage:"Continue without waiting for the triggered build"`
	Branches      []string   `flag:"branches" usage:"Branch patterns the step runs on"`
	BuildMessage  string     `flag:"build-message" usage:"The message of the triggered build"`
	BuildCommit   string     `flag:"build-commit" usage:"The commit of the triggered build"`
	BuildBranch   string     `flag:"build-branch" usage:"The branch of the triggered build"`
	BuildEnv      [][]string `flag:"build-env" nargs:"2" usage:"An environment variable for the triggered build, given as KEY VALUE (repeatable)"`
	BuildMetaData [][]string `flag:"build-meta-data" nargs:"2" usage:"Meta-data for the triggered build, given as KEY VALUE (repeatable)"`
}

var TriggerCommand = cli.Command{
	Name:            "trigger",
	Usage:           "Prints a trigger step",
	ArgsUsage:       "PIPELINE",
	Description:     triggerHelpDescription,
	Flags:           cliconfig.Flags(&TriggerConfig{}),
	SkipFlagParsing: true,
	Action: NewStepAction(StepAction[TriggerConfig]{
		Input: func(_ logger.Logger, cfg *TriggerConfig) (step.Builder, error) {
			return step.TriggerInput{
				Pipeline: cfg.Pipeline,
				Label:    cfg.Label,
				Async:    cfg.Async,
				Branches: cfg.Branches,
				BuildAttrs: step.TriggerBuild{
					Message:  cfg.BuildMessage,
					Commit:   cfg.BuildCommit,
					Branch:   cfg.BuildBranch,
					Env:      keyValues(cfg.BuildEnv),
					MetaData: keyValues(cfg.BuildMetaData),
				},
			}, nil
		},
	}),
}
