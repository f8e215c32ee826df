package clicommand

import (
	"bytes"
	"testing"

	"github.com/buildkite/bkyml/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appResult struct {
	stdout string
	stderr string
	code   int
}

func runApp(t *testing.T, args ...string) appResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"bkyml"}, args...))
	code := PrintMessageAndReturnExitCode(&stderr, err)

	return appResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func TestCommandsOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "env",
			args: []string{"env", "--var", "a", "b", "--var", "c", "d"},
			want: "env:\n  a: b\n  c: d\n",
		},
		{
			name: "comment",
			args: []string{"comment", "multiline\ncomments", "are fun"},
			want: "# multiline\n# comments\n# are fun\n",
		},
		{
			name: "steps",
			args: []string{"steps"},
			want: "steps:\n",
		},
		{
			name: "single command",
			args: []string{"command", "--command", "cmd"},
			want: "  - command: cmd\n",
		},
		{
			name: "zero timeout is left out",
			args: []string{"command", "--command", "cmd", "--timeout-in-minutes", "0"},
			want: "  - command: cmd\n",
		},
		{
			name: "negative timeout is left out",
			args: []string{"command", "--command", "cmd", "--timeout-in-minutes", "-5"},
			want: "  - command: cmd\n",
		},
		{
			name: "comment with trailing newline",
			args: []string{"comment", "a\n"},
			want: "# a\n",
		},
		{
			name: "command with retry",
			args: []string{
				"command",
				"--command", "make deps", "make test",
				"--label", "Tests",
				"--parallelism", "1",
				"--retry", "automatic",
				"--retry-automatic-limit", "11",
			},
			want: `  - label: Tests
    command:
      - make deps
      - make test
    retry:
      automatic:
        limit: 10
`,
		},
		{
			name: "command with concurrency and skip",
			args: []string{
				"command",
				"--command", "make release",
				"--concurrency", "1",
				"--concurrency-group", "release",
				"--skip", "Waiting on the new runner",
			},
			want: `  - command: make release
    concurrency: 1
    concurrency_group: release
    skip: Waiting on the new runner
`,
		},
		{
			name: "bare wait",
			args: []string{"wait"},
			want: "  - wait\n",
		},
		{
			name: "wait continuing on failure",
			args: []string{"wait", "--continue-on-failure"},
			want: "  - wait:\n    continue_on_failure: true\n",
		},
		{
			name: "trigger",
			args: []string{"trigger", "deploy", "--async", "--build-branch", "main", "--build-env", "STAGE", "prod"},
			want: `  - trigger: deploy
    async: true
    build:
      branch: main
      env:
        STAGE: prod
`,
		},
		{
			name: "block with fields",
			args: []string{
				"block", "Release",
				"--field-select", "stream", "Stream", "", "false", "beta", "beta=Beta", "stable=Stable",
				"--field-text", "name", "Name", "", "true", "",
			},
			want: `  - block: Release
    fields:
      - text: Name
        key: name
        required: true
      - select: Stream
        key: stream
        default: beta
        options:
          - label: Beta
            value: beta
          - label: Stable
            value: stable
`,
		},
		{
			name: "plugin",
			args: []string{"plugin", "--name", "Lint", "--plugin", "shellcheck#v1.4.0", "files=scripts/*.sh", "--plugin", "docker-login"},
			want: `  - name: Lint
    plugins:
      shellcheck#v1.4.0:
        files: scripts/*.sh
      docker-login:
`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := runApp(t, test.args...)
			assert.Equal(t, 0, got.code, "stderr: %s", got.stderr)
			assert.Equal(t, test.want, got.stdout)
		})
	}
}

func TestCommandsUsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{
			name:       "concurrency without a group",
			args:       []string{"command", "--command", "x", "--concurrency", "2"},
			wantStderr: "bkyml: fatal: --concurrency requires --concurrency-group. See: `bkyml command --help`\n",
		},
		{
			name:       "env without variables",
			args:       []string{"env"},
			wantStderr: "bkyml: fatal: env requires at least one --var. See: `bkyml env --help`\n",
		},
		{
			name:       "env variable without a value",
			args:       []string{"env", "--var", "a"},
			wantStderr: "bkyml: fatal: --var expects 2 values (got 1). See: `bkyml env --help`\n",
		},
		{
			name:       "unknown flag",
			args:       []string{"wait", "--forever"},
			wantStderr: "bkyml: fatal: unrecognized argument \"--forever\". See: `bkyml wait --help`\n",
		},
		{
			name:       "plugin step without plugins",
			args:       []string{"plugin", "--name", "Lint"},
			wantStderr: "bkyml: fatal: plugin requires at least one --plugin. See: `bkyml plugin --help`\n",
		},
		{
			name:       "unknown command",
			args:       []string{"frobnicate"},
			wantStderr: "bkyml: fatal: unknown command \"frobnicate\". See: `bkyml --help`\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := runApp(t, test.args...)
			assert.Equal(t, ExitUsage, got.code)
			assert.Equal(t, "", got.stdout)
			assert.Equal(t, test.wantStderr, got.stderr)
		})
	}
}

func TestCommandsValidationFailuresWriteNothing(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"command"},
		{"command", "--command", "x", "--retry", "sometimes"},
		{"command", "--command", "x", "--retry-automatic-limit", "2"},
		{"command", "--command", "x", "--retry", "automatic", "--retry-automatic-tuple", "1", "2", "--retry-automatic-limit", "3"},
		{"command", "--command", "x", "--parallelism", "zero"},
		{"command", "--command", "x", "--timeout-in-minutes", "soon"},
		{"plugin", "--plugin", "image=golang"},
		{"trigger"},
		{"block", " "},
		{"block", "Release", "--field-text", "", "Name", "", "false", ""},
		{"block", "Release", "--field-select", "k", "K", "", "false", ""},
	} {
		got := runApp(t, args...)
		assert.Equal(t, ExitUsage, got.code, "args: %q", args)
		assert.Equal(t, "", got.stdout, "args: %q", args)
		assert.Contains(t, got.stderr, "bkyml: fatal: ", "args: %q", args)
	}
}

func TestLimitWarning(t *testing.T) {
	t.Parallel()

	got := runApp(t, "command", "--command", "x", "--retry", "automatic", "--retry-automatic-limit", "11")
	require.Equal(t, 0, got.code)
	assert.Contains(t, got.stderr, "--retry-automatic-limit 11 is more than Buildkite allows, using 10")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	got := runApp(t, "--version")
	assert.Equal(t, 0, got.code)
	assert.Equal(t, "bkyml "+version.Version()+"\n", got.stdout)
}

func TestCommandHelp(t *testing.T) {
	t.Parallel()

	got := runApp(t, "env", "--help")
	assert.Equal(t, 0, got.code)
	assert.Contains(t, got.stdout, "bkyml env --var KEY VALUE")
	assert.Contains(t, got.stdout, "--var value")
}

func TestVerboseLogging(t *testing.T) {
	t.Parallel()

	got := runApp(t, "-vv", "--no-color", "env", "--var", "GREETING", "hello world")
	require.Equal(t, 0, got.code)
	assert.Equal(t, "env:\n  GREETING: hello world\n", got.stdout)
	assert.Contains(t, got.stderr, `Invoked as: bkyml env --var GREETING "hello world"`)
	assert.Contains(t, got.stderr, "Generated env command=env args=3 step=false")
}

func TestJSONLogging(t *testing.T) {
	t.Parallel()

	got := runApp(t, "--log-format", "json", "-v", "steps")
	require.Equal(t, 0, got.code)
	assert.Equal(t, "steps:\n", got.stdout)
	assert.Contains(t, got.stderr, `"msg":"Generated steps"`)
	assert.NotContains(t, got.stderr, "Invoked as")
}

func TestBadLogFormat(t *testing.T) {
	t.Parallel()

	got := runApp(t, "--log-format", "xml", "steps")
	assert.Equal(t, ExitUsage, got.code)
	assert.Equal(t, "", got.stdout)
	assert.Contains(t, got.stderr, `Invalid log-format "xml"`)
}

func TestLogLevelFromEnvironment(t *testing.T) {
	t.Setenv("BKYML_LOG_LEVEL", "debug")

	got := runApp(t, "steps")
	require.Equal(t, 0, got.code)
	assert.Contains(t, got.stderr, "Invoked as: bkyml steps")
}
