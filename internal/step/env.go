package step

import "github.com/buildkite/bkyml/internal/ordered"

// EnvInput is the input to the env subcommand, which emits a pipeline-wide
// env block.
type EnvInput struct {
	Vars []KeyValue
}

// Build returns {env: {key: value, ...}} in input order.
func (in EnvInput) Build() (*Document, error) {
	if len(in.Vars) == 0 {
		return nil, newError(MissingInput, "env requires at least one --var")
	}
	return &Document{
		Kind:  KindTopLevel,
		Value: ordered.MapFromItems(ordered.TupleSA{Key: "env", Value: mapFromPairs(in.Vars)}),
	}, nil
}
