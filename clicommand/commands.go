package clicommand

import "github.com/urfave/cli"

// BkymlCommands are the subcommands of bkyml. Each prints one fragment of a
// pipeline.yml.
var BkymlCommands = []cli.Command{
	CommentCommand,
	StepsCommand,
	EnvCommand,
	CommandCommand,
	PluginCommand,
	WaitCommand,
	TriggerCommand,
	BlockCommand,
}
