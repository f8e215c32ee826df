package clicommand

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/buildkite/bkyml/cliconfig"
	"github.com/buildkite/bkyml/internal/ptr"
	"github.com/buildkite/bkyml/internal/render"
	"github.com/buildkite/bkyml/internal/step"
	"github.com/buildkite/bkyml/logger"
	"github.com/buildkite/shellwords"
	"github.com/urfave/cli"
)

// StepAction is a subcommand that generates a document. Its arguments are
// parsed into a T with cliconfig.ParseArgs, and Input turns the T into the
// builder for the document. Values are validated in Input and Build, before
// anything is written.
type StepAction[T any] struct {
	Input func(l logger.Logger, cfg *T) (step.Builder, error)
}

// NewStepAction returns the urfave/cli action for f. The command must set
// SkipFlagParsing so that its arguments reach the action untouched.
func NewStepAction[T any](f StepAction[T]) cli.ActionFunc {
	return func(c *cli.Context) error {
		globalCfg, err := loadGlobalConfig(c)
		if err != nil {
			return NewExitError(ExitUsage, err)
		}

		l, err := CreateLogger(globalCfg, errWriter(c))
		if err != nil {
			return NewExitError(ExitUsage, err)
		}
		args := []string(c.Args())
		l = l.WithFields(logger.StringField("command", c.Command.Name), logger.IntField("args", len(args)))

		l.Debug("Invoked as: %s", quoteArgs(append([]string{c.App.Name, c.Command.Name}, args...)))

		cfg := new(T)
		if err := cliconfig.ParseArgs(args, cfg); err != nil {
			if errors.Is(err, cliconfig.ErrHelp) {
				return cli.ShowCommandHelp(c, c.Command.Name)
			}
			return usageError(c, err)
		}

		input, err := f.Input(l, cfg)
		if err != nil {
			return usageError(c, err)
		}

		doc, err := input.Build()
		if err != nil {
			return usageError(c, err)
		}
		if doc == nil {
			l.Info("Nothing to generate")
			return nil
		}

		if err := render.Write(c.App.Writer, doc); err != nil {
			return fmt.Errorf("writing %s output: %w", c.Command.Name, err)
		}
		l.WithFields(logger.BoolField("step", doc.Kind == step.KindStep)).Info("Generated %s", c.Command.Name)

		return nil
	}
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

func quoteArgs(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		quoted = append(quoted, shellwords.Quote(arg))
	}
	return strings.Join(quoted, " ")
}

// keyValues turns the groups of a `nargs:"2"` flag into pairs.
func keyValues(groups [][]string) []step.KeyValue {
	var kvs []step.KeyValue
	for _, g := range groups {
		kvs = append(kvs, step.KeyValue{Key: g[0], Value: g[1]})
	}
	return kvs
}

// optionalPositiveInt parses s if it was given.
func optionalPositiveInt(name string, s *string) (*int, error) {
	if s == nil {
		return nil, nil
	}
	n, err := step.PositiveInt(name, *s)
	if err != nil {
		return nil, err
	}
	return ptr.To(n), nil
}

func optionalInt(name string, s *string) (*int, error) {
	if s == nil {
		return nil, nil
	}
	n, err := step.Int(name, *s)
	if err != nil {
		return nil, err
	}
	return ptr.To(n), nil
}
