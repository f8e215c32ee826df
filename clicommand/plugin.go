package clicommand

import (
	"github.com/buildkite/bkyml/cliconfig"
	"github.com/buildkite/bkyml/internal/step"
	"github.com/buildkite/bkyml/logger"
	"github.com/urfave/cli"
)

const pluginHelpDescription = `Usage:

   bkyml plugin [--name NAME] --plugin ID [KEY=VALUE ...] [--plugin ...]

Description:
   Prints a step that only runs plugins. Each --plugin flag takes the plugin
   identifier followed by its configuration as key=value pairs.

Example:

   $ bkyml plugin --name "Lint" --plugin shellcheck#v1.4.0 files=scripts/*.sh
     - name: Lint
       plugins:
         shellcheck#v1.4.0:
           files: scripts/*.sh`

type PluginConfig struct {
	Name    string     `flag:"name" usage:"The name shown for the step"`
	Plugins [][]string `flag:"plugin" usage:"A plugin followed by its key=value configuration (repeatable)"`
}

var PluginCommand = cli.Command{
	Name:            "plugin",
	Usage:           "Prints a plugin step",
	Description:     pluginHelpDescription,
	Flags:           cliconfig.Flags(&PluginConfig{}),
	SkipFlagParsing: true,
	Action:          NewStepAction(StepAction[PluginConfig]{Input: pluginInput}),
}

func pluginInput(_ logger.Logger, cfg *PluginConfig) (step.Builder, error) {
	if len(cfg.Plugins) == 0 {
		return nil, &step.Error{Kind: step.MissingInput, Message: "plugin requires at least one --plugin"}
	}
	plugins, err := step.ParsePlugins(cfg.Plugins)
	if err != nil {
		return nil, err
	}
	return step.PluginInput{Name: cfg.Name, Plugins: plugins}, nil
}
