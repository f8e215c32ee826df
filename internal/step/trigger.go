package step

import (
	"strings"

	"github.com/buildkite/bkyml/internal/ordered"
)

// TriggerInput is the input to the trigger subcommand.
type TriggerInput struct {
	// Pipeline is the slug of the pipeline to trigger.
	Pipeline string

	Label      string
	Async      bool
	Branches   []string
	BuildAttrs TriggerBuild
}

// TriggerBuild holds the attributes of the build created by a trigger step.
// Empty strings and lists are left out.
type TriggerBuild struct {
	Message  string
	Commit   string
	Branch   string
	Env      []KeyValue
	MetaData []KeyValue
}

func (b TriggerBuild) toMap() *ordered.MapSA {
	m := ordered.NewMap[string, any](5)
	if b.Message != "" {
		m.Set("message", b.Message)
	}
	if b.Commit != "" {
		m.Set("commit", b.Commit)
	}
	if b.Branch != "" {
		m.Set("branch", b.Branch)
	}
	if len(b.Env) > 0 {
		m.Set("env", mapFromPairs(b.Env))
	}
	if len(b.MetaData) > 0 {
		m.Set("meta_data", mapFromPairs(b.MetaData))
	}
	return m
}

// Build returns the trigger step.
func (in TriggerInput) Build() (*Document, error) {
	if strings.TrimSpace(in.Pipeline) == "" {
		return nil, newError(MissingInput, "trigger requires a pipeline")
	}

	m := ordered.NewMap[string, any](5)
	m.Set("trigger", in.Pipeline)

	if in.Label != "" {
		m.Set("label", in.Label)
	}
	if in.Async {
		m.Set("async", true)
	}
	if len(in.Branches) > 0 {
		m.Set("branches", joinBranches(in.Branches))
	}
	if build := in.BuildAttrs.toMap(); build.Len() > 0 {
		m.Set("build", build)
	}

	return &Document{Kind: KindStep, Value: m}, nil
}
