package clicommand

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/buildkite/bkyml/cliconfig"
	"github.com/buildkite/bkyml/logger"
	"github.com/urfave/cli"
)

var ConfigFlag = cli.StringFlag{
	Name:   "config",
	Value:  "",
	Usage:  "Path to a configuration file in dotenv format, one line per global flag",
	EnvVar: "BKYML_CONFIG",
}

var VerboseFlag = cli.BoolFlag{
	Name:   "verbose, v",
	Usage:  "Set the log level to info",
	EnvVar: "BKYML_VERBOSE",
}

var VeryVerboseFlag = cli.BoolFlag{
	Name:   "very-verbose, vv",
	Usage:  "Set the log level to debug",
	EnvVar: "BKYML_VERY_VERBOSE",
}

var LogLevelFlag = cli.StringFlag{
	Name:   "log-level",
	Value:  "notice",
	Usage:  "Set the log level, one of: debug, info, notice, warn, error, fatal",
	EnvVar: "BKYML_LOG_LEVEL",
}

var LogFormatFlag = cli.StringFlag{
	Name:   "log-format",
	Value:  "text",
	Usage:  "The format to use for the logger output, one of: text, json",
	EnvVar: "BKYML_LOG_FORMAT",
}

var NoColorFlag = cli.BoolFlag{
	Name:   "no-color",
	Usage:  "Don't show colors in logging",
	EnvVar: "BKYML_NO_COLOR",
}

// VersionFlag replaces urfave/cli's default, which would take -v.
var VersionFlag = cli.BoolFlag{
	Name:  "version",
	Usage: "Print the version",
}

// DefaultConfigFilePaths are tried in order when --config is not given.
func DefaultConfigFilePaths() (paths []string) {
	if runtime.GOOS == "windows" {
		paths = []string{
			"$USERPROFILE\\AppData\\Local\\bkyml\\bkyml.cfg",
		}
	} else {
		paths = []string{
			"$HOME/.bkyml.cfg",
			"$HOME/.config/bkyml/bkyml.cfg",
		}
	}

	// Also check the working directory.
	if wd, err := os.Getwd(); err == nil {
		paths = append([]string{filepath.Join(wd, ".bkyml.cfg")}, paths...)
	}

	return paths
}

// loadGlobalConfig loads the app's flags. c may be the app's context or the
// context of one of its commands.
func loadGlobalConfig(c *cli.Context) (GlobalConfig, error) {
	appCtx := c
	if c.Parent() != nil {
		appCtx = c.Parent()
	}

	cfg := GlobalConfig{}
	loader := cliconfig.Loader{
		CLI:                    appCtx,
		Config:                 &cfg,
		DefaultConfigFilePaths: DefaultConfigFilePaths(),
	}
	if err := loader.Load(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// CreateLogger returns a logger writing to w, configured from the global
// flags. -v and -vv take precedence over --log-level.
func CreateLogger(cfg GlobalConfig, w io.Writer) (logger.Logger, error) {
	var printer logger.Printer
	switch cfg.LogFormat {
	case "json":
		printer = logger.NewJSONPrinter(w)
	default:
		tp := logger.NewTextPrinter(w)
		if f, ok := w.(*os.File); ok && !cfg.NoColor {
			tp.Colors = logger.ColorsAvailable(f)
		}
		printer = tp
	}

	l := logger.NewConsoleLogger(printer, os.Exit)

	level := logger.NOTICE
	if cfg.LogLevel != "" {
		var err error
		level, err = logger.LevelFromString(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
	}
	switch {
	case cfg.VeryVerbose:
		level = logger.DEBUG
	case cfg.Verbose:
		level = min(level, logger.INFO)
	}
	l.SetLevel(level)

	return l, nil
}
