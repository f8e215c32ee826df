package step

import "github.com/buildkite/bkyml/internal/ordered"

// CommandInput is the input to the command subcommand.
type CommandInput struct {
	Label string

	// Commands holds one group per --command flag. The groups are flattened
	// into a single list.
	Commands [][]string

	Branches []string
	Env      []KeyValue
	Agents   []KeyValue

	// ArtifactPaths holds one group per --artifact-paths flag.
	ArtifactPaths [][]string

	Parallelism      *int
	Concurrency      *int
	ConcurrencyGroup string
	TimeoutInMinutes *int

	// Skip is nil, a bool, or a string giving the reason for skipping (see
	// BoolOrString).
	Skip any

	Retry   Retry
	Plugins Plugins
}

// Build returns the command step.
func (in CommandInput) Build() (*Document, error) {
	commands := flatten(in.Commands)
	if len(commands) == 0 {
		return nil, newError(MissingInput, "--command requires at least one value")
	}

	if err := in.validate(); err != nil {
		return nil, err
	}

	m := ordered.NewMap[string, any](13)

	if in.Label != "" {
		m.Set("label", in.Label)
	}

	m.Set("command", singlify(commands))

	if len(in.Branches) > 0 {
		m.Set("branches", joinBranches(in.Branches))
	}

	if len(in.Env) > 0 {
		m.Set("env", mapFromPairs(in.Env))
	}

	if len(in.Agents) > 0 {
		m.Set("agents", mapFromPairs(in.Agents))
	}

	if paths := flatten(in.ArtifactPaths); len(paths) > 0 {
		m.Set("artifact_paths", singlify(paths))
	}

	// A parallelism of 1 is what Buildkite does anyway.
	if in.Parallelism != nil && *in.Parallelism > 1 {
		m.Set("parallelism", *in.Parallelism)
	}

	if in.Concurrency != nil {
		m.Set("concurrency", *in.Concurrency)
		m.Set("concurrency_group", in.ConcurrencyGroup)
	}

	if in.TimeoutInMinutes != nil && *in.TimeoutInMinutes > 0 {
		m.Set("timeout_in_minutes", *in.TimeoutInMinutes)
	}

	switch skip := in.Skip.(type) {
	case bool:
		if skip {
			m.Set("skip", true)
		}
	case string:
		if skip != "" {
			m.Set("skip", skip)
		}
	}

	if in.Retry != nil {
		m.Set("retry", retryMap(in.Retry))
	}

	if len(in.Plugins) > 0 {
		m.Set("plugins", in.Plugins.toMap())
	}

	return &Document{Kind: KindStep, Value: m}, nil
}

// validate checks the constraints that hold between fields.
func (in CommandInput) validate() error {
	if in.Parallelism != nil && *in.Parallelism <= 0 {
		return newError(InvalidValue, "--parallelism: %d is not a positive integer", *in.Parallelism)
	}

	switch {
	case in.Concurrency != nil && in.ConcurrencyGroup == "":
		return newError(ValidationError, "--concurrency requires --concurrency-group")
	case in.Concurrency == nil && in.ConcurrencyGroup != "":
		return newError(ValidationError, "--concurrency-group requires --concurrency")
	case in.Concurrency != nil && *in.Concurrency <= 0:
		return newError(InvalidValue, "--concurrency: %d is not a positive integer", *in.Concurrency)
	}

	switch in.Skip.(type) {
	case nil, bool, string:
	default:
		return newError(InvalidValue, "--skip: unsupported value %v (%T)", in.Skip, in.Skip)
	}

	return nil
}
