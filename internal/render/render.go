// Package render writes step.Documents as YAML text that can be pasted
// straight into a pipeline.yml.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/buildkite/bkyml/internal/step"
	"gopkg.in/yaml.v3"
)

// indent is the number of spaces per nesting level, and also the prefix put
// in front of step fragments so they line up under a `steps:` header.
const indent = 2

// Marshal renders doc to YAML. A nil doc renders to nothing.
func Marshal(doc *step.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders doc to w.
func Write(w io.Writer, doc *step.Document) error {
	if doc == nil {
		return nil
	}

	switch doc.Kind {
	case step.KindComment:
		text, ok := doc.Value.(string)
		if !ok {
			return fmt.Errorf("comment document has value of type %T, want string", doc.Value)
		}
		_, err := io.WriteString(w, text+"\n")
		return err

	case step.KindTopLevel:
		out, err := encode(doc.Value)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err

	case step.KindStep:
		// Encode the step as the only item of a list, then shift it right so
		// it nests under `steps:`.
		out, err := encode([]any{doc.Value})
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, shift(string(out)))
		return err

	default:
		return fmt.Errorf("unknown document kind %d", doc.Kind)
	}
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// shift prefixes every non-empty line of s with indent spaces.
func shift(s string) string {
	pad := strings.Repeat(" ", indent)
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			b.WriteString(pad)
		}
		b.WriteString(l)
	}
	return b.String()
}
