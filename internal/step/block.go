package step

import (
	"strings"

	"github.com/buildkite/bkyml/internal/ordered"
)

// Number of tokens before the options of --field-text and --field-select:
// key, label, hint, required, default.
const fieldTokens = 5

// BlockInput is the input to the block subcommand.
type BlockInput struct {
	Label    string
	Prompt   string
	Branches []string
	Fields   []Field
}

// Field is a TextField or a SelectField.
type Field interface {
	fieldMap() (*ordered.MapSA, error)
}

var (
	_ Field = TextField{}
	_ Field = SelectField{}
)

// FieldAttrs are the attributes shared by every kind of field.
type FieldAttrs struct {
	Key      string
	Label    string
	Hint     string
	Required bool
	Default  string
}

// parseFieldAttrs parses key, label, hint, required and default.
func parseFieldAttrs(name string, tokens []string) (FieldAttrs, error) {
	required, err := ParseBool(name+" required", tokens[3])
	if err != nil {
		return FieldAttrs{}, err
	}
	return FieldAttrs{
		Key:      tokens[0],
		Label:    tokens[1],
		Hint:     tokens[2],
		Required: required,
		Default:  tokens[4],
	}, nil
}

// attrsMap returns {<kind>: label, key, hint?, required?, default?}.
func (a FieldAttrs) attrsMap(kind, flag string) (*ordered.MapSA, error) {
	if strings.TrimSpace(a.Key) == "" {
		return nil, newError(InvalidValue, "%s: key must not be empty", flag)
	}
	if strings.TrimSpace(a.Label) == "" {
		return nil, newError(InvalidValue, "%s %s: label must not be empty", flag, a.Key)
	}

	m := ordered.NewMap[string, any](6)
	m.Set(kind, a.Label)
	m.Set("key", a.Key)
	if a.Hint != "" {
		m.Set("hint", a.Hint)
	}
	if a.Required {
		m.Set("required", true)
	}
	if a.Default != "" {
		m.Set("default", a.Default)
	}
	return m, nil
}

// TextField is a free text input.
type TextField struct {
	FieldAttrs
}

// ParseTextField parses the tokens of one --field-text flag.
func ParseTextField(tokens []string) (TextField, error) {
	switch {
	case len(tokens) < fieldTokens:
		return TextField{}, newError(MissingInput, "--field-text requires key, label, hint, required and default (got %d values)", len(tokens))
	case len(tokens) > fieldTokens:
		return TextField{}, newError(InvalidValue, "--field-text takes exactly %d values (got %d)", fieldTokens, len(tokens))
	}
	attrs, err := parseFieldAttrs("--field-text", tokens)
	if err != nil {
		return TextField{}, err
	}
	return TextField{FieldAttrs: attrs}, nil
}

func (f TextField) fieldMap() (*ordered.MapSA, error) {
	return f.attrsMap("text", "--field-text")
}

// Option is one choice of a SelectField.
type Option struct {
	Value string
	Label string
}

// SelectField is a choice between options.
type SelectField struct {
	FieldAttrs
	Options []Option
}

// ParseSelectField parses the tokens of one --field-select flag: the five
// field attributes followed by one or more value=label options.
func ParseSelectField(tokens []string) (SelectField, error) {
	if len(tokens) < fieldTokens+1 {
		return SelectField{}, newError(MissingInput, "--field-select requires key, label, hint, required, default and at least one value=label option (got %d values)", len(tokens))
	}
	attrs, err := parseFieldAttrs("--field-select", tokens)
	if err != nil {
		return SelectField{}, err
	}

	f := SelectField{FieldAttrs: attrs}
	for _, tok := range tokens[fieldTokens:] {
		kv, ok := KeyValueOrBareToken(tok)
		if !ok {
			return SelectField{}, newError(InvalidValue, "--field-select %s: option %q is not in value=label form", attrs.Key, tok)
		}
		f.Options = append(f.Options, Option{Value: kv.Key, Label: kv.Value})
	}
	return f, nil
}

func (f SelectField) fieldMap() (*ordered.MapSA, error) {
	if len(f.Options) == 0 {
		return nil, newError(MissingInput, "--field-select %s: at least one option is required", f.Key)
	}
	m, err := f.attrsMap("select", "--field-select")
	if err != nil {
		return nil, err
	}
	options := make([]any, 0, len(f.Options))
	for _, o := range f.Options {
		options = append(options, ordered.MapFromItems(
			ordered.TupleSA{Key: "label", Value: o.Label},
			ordered.TupleSA{Key: "value", Value: o.Value},
		))
	}
	m.Set("options", options)
	return m, nil
}

// Build returns the block step.
func (in BlockInput) Build() (*Document, error) {
	if strings.TrimSpace(in.Label) == "" {
		return nil, newError(InvalidValue, "block label must not be empty")
	}

	m := ordered.NewMap[string, any](4)
	m.Set("block", in.Label)

	if in.Prompt != "" {
		m.Set("prompt", in.Prompt)
	}
	if len(in.Branches) > 0 {
		m.Set("branches", joinBranches(in.Branches))
	}

	if len(in.Fields) > 0 {
		fields := make([]any, 0, len(in.Fields))
		for _, f := range in.Fields {
			fm, err := f.fieldMap()
			if err != nil {
				return nil, err
			}
			fields = append(fields, fm)
		}
		m.Set("fields", fields)
	}

	return &Document{Kind: KindStep, Value: m}, nil
}
