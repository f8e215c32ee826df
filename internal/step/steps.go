package step

import "github.com/buildkite/bkyml/internal/ordered"

// StepsInput is the input to the steps subcommand. It has no fields.
type StepsInput struct{}

// Build returns the header that the steps list hangs off.
func (StepsInput) Build() (*Document, error) {
	return &Document{
		Kind:  KindTopLevel,
		Value: ordered.MapFromItems(ordered.TupleSA{Key: "steps", Value: nil}),
	}, nil
}
