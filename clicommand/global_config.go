package clicommand

import "github.com/urfave/cli"

// GlobalConfig holds the flags that come before the subcommand, as in
// `bkyml -vv command ...`.
type GlobalConfig struct {
	Config      string `cli:"config"`
	Verbose     bool   `cli:"verbose"`
	VeryVerbose bool   `cli:"very-verbose"`
	LogLevel    string `cli:"log-level" validate:"oneof=debug|info|notice|warn|error|fatal"`
	LogFormat   string `cli:"log-format" validate:"oneof=text|json"`
	NoColor     bool   `cli:"no-color"`
	Version     bool   `cli:"version"`
}

// GlobalFlags are the flags of the app itself.
var GlobalFlags = []cli.Flag{
	ConfigFlag,
	VerboseFlag,
	VeryVerboseFlag,
	LogLevelFlag,
	LogFormatFlag,
	NoColorFlag,
	VersionFlag,
}
