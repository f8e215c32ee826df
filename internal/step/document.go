// Package step builds fragments of a Buildkite pipeline document.
//
// Each subcommand of bkyml has an input type in this package. Input types
// hold already-grouped values (one slice per repeated flag, pointers for
// optional scalars), and their Build method validates them and returns the
// fragment. Nothing in this package parses command lines or writes output.
package step

import (
	"strings"

	"github.com/buildkite/bkyml/internal/ordered"
)

// Kind says how a Document is laid out when it is rendered.
type Kind int

const (
	// KindComment is a block of "# " prefixed lines.
	KindComment Kind = iota + 1

	// KindTopLevel is a mapping that belongs at the top level of a pipeline,
	// such as the steps header or a pipeline-wide env block.
	KindTopLevel

	// KindStep is a single item of the steps list.
	KindStep
)

// Document is a generated fragment.
type Document struct {
	Kind Kind

	// Value is a string for comments and bare-scalar steps (wait), and an
	// *ordered.MapSA otherwise.
	Value any
}

// Builder is implemented by every input type.
type Builder interface {
	Build() (*Document, error)
}

// KeyValue is a key and a value given together on the command line, as in
// `--env KEY VALUE` or `key=value`.
type KeyValue struct {
	Key   string
	Value string
}

// mapFromPairs builds an ordered map from pairs. Duplicate keys keep the
// position of their first appearance and the value of their last.
func mapFromPairs(pairs []KeyValue) *ordered.MapSS {
	m := ordered.NewMap[string, string](len(pairs))
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// flatten joins groups of values (one group per repeated flag) into a single
// list.
func flatten(groups [][]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// singlify returns the only element of a one-element list, or the list
// itself otherwise.
func singlify(values []string) any {
	if len(values) == 1 {
		return values[0]
	}
	return values
}

// joinBranches joins branch patterns the way Buildkite expects them in the
// branches attribute: space separated.
func joinBranches(patterns []string) string {
	return strings.Join(patterns, " ")
}
