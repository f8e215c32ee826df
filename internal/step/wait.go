package step

import "github.com/buildkite/bkyml/internal/ordered"

// WaitInput is the input to the wait subcommand.
type WaitInput struct {
	ContinueOnFailure bool
}

// Build returns a bare "wait" step, or the mapping form when the build should
// continue past failed steps.
func (in WaitInput) Build() (*Document, error) {
	if !in.ContinueOnFailure {
		return &Document{Kind: KindStep, Value: "wait"}, nil
	}
	return &Document{
		Kind: KindStep,
		Value: ordered.MapFromItems(
			ordered.TupleSA{Key: "wait", Value: nil},
			ordered.TupleSA{Key: "continue_on_failure", Value: true},
		),
	}, nil
}
