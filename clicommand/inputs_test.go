package clicommand

import (
	"testing"

	"github.com/buildkite/bkyml/cliconfig"
	"github.com/buildkite/bkyml/internal/ptr"
	"github.com/buildkite/bkyml/internal/step"
	"github.com/buildkite/bkyml/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandInputWarnsWhenLimitIsClamped(t *testing.T) {
	t.Parallel()

	l := logger.NewBuffer()
	cfg := &CommandConfig{
		Commands: [][]string{{"make test"}},
		RetryConfig: RetryConfig{
			Retry:               step.RetryAutomatic,
			RetryAutomaticLimit: ptr.To("25"),
		},
	}

	input, err := commandInput(l, cfg)
	require.NoError(t, err)

	in, ok := input.(step.CommandInput)
	require.True(t, ok, "commandInput returned %T", input)
	assert.Equal(t, step.AutomaticRetry{Limit: ptr.To(25)}, in.Retry)
	assert.Equal(t, []string{"[warn] --retry-automatic-limit 25 is more than Buildkite allows, using 10"}, l.Messages)
}

func TestCommandInputConvertsOptionalValues(t *testing.T) {
	t.Parallel()

	cfg := &CommandConfig{
		Commands:         [][]string{{"make test"}},
		Parallelism:      ptr.To("3"),
		TimeoutInMinutes: ptr.To("15"),
		Skip:             &cliconfig.OptionalString{},
		Env:              [][]string{{"CI", "true"}},
	}
	require.NoError(t, cfg.Skip.Set("FALSE"))

	input, err := commandInput(logger.Discard, cfg)
	require.NoError(t, err)

	in := input.(step.CommandInput)
	assert.Equal(t, ptr.To(3), in.Parallelism)
	assert.Nil(t, in.Concurrency)
	assert.Equal(t, ptr.To(15), in.TimeoutInMinutes)
	assert.Equal(t, false, in.Skip)
	assert.Equal(t, []step.KeyValue{{Key: "CI", Value: "true"}}, in.Env)
}

func TestCommandInputRejectsBadNumbers(t *testing.T) {
	t.Parallel()

	_, err := commandInput(logger.Discard, &CommandConfig{
		Commands:    [][]string{{"x"}},
		Concurrency: ptr.To("-3"),
	})
	assert.ErrorIs(t, err, step.ErrInvalidValue)
}

func TestBlockInputOrdersTextFieldsFirst(t *testing.T) {
	t.Parallel()

	input, err := blockInput(logger.Discard, &BlockConfig{
		Label:        "Release",
		SelectFields: [][]string{{"stream", "Stream", "", "false", "", "beta=Beta"}},
		TextFields:   [][]string{{"name", "Name", "", "", ""}},
	})
	require.NoError(t, err)

	in := input.(step.BlockInput)
	require.Len(t, in.Fields, 2)
	assert.IsType(t, step.TextField{}, in.Fields[0])
	assert.IsType(t, step.SelectField{}, in.Fields[1])
}

func TestPluginInputRequiresPlugins(t *testing.T) {
	t.Parallel()

	_, err := pluginInput(logger.Discard, &PluginConfig{Name: "Lint"})
	assert.ErrorIs(t, err, step.ErrMissingInput)
}

func TestOptionalPositiveInt(t *testing.T) {
	t.Parallel()

	got, err := optionalPositiveInt("--parallelism", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = optionalPositiveInt("--parallelism", ptr.To("4"))
	require.NoError(t, err)
	assert.Equal(t, ptr.To(4), got)

	_, err = optionalPositiveInt("--parallelism", ptr.To("0"))
	assert.ErrorIs(t, err, step.ErrInvalidValue)
}
