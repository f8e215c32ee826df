package cliconfig

import (
	"errors"
	"flag"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/oleiade/reflections"
	"github.com/urfave/cli"
)

// ErrHelp is returned by ParseArgs when -h or --help is among the arguments.
var ErrHelp = errors.New("help requested")

var flagValueType = reflect.TypeFor[flag.Value]()

// argSpec describes one `flag` tagged field of a config struct.
//
// nargs follows the Python argparse convention: "0" (a switch), a fixed
// count, "?" (zero or one), "*" (any number) or "+" (at least one).
type argSpec struct {
	field string
	name  string
	nargs string
	usage string
	kind  string
}

// ParseArgs fills cfg, which must be a pointer to a struct, from command line
// arguments that urfave/cli has passed through unparsed.
//
// Fields are bound with struct tags:
//
//	Commands [][]string `flag:"command" nargs:"+"`   // one group per --command
//	Label    string     `flag:"label"`               // last value wins
//	Limit    *string    `flag:"limit"`               // nil unless given
//	Async    bool       `flag:"async"`               // switch
//	Pipeline string     `arg:"0"`                    // first positional
//	Lines    []string   `arg:"*"`                    // every positional
//
// A flag's values run until the next token that looks like a flag, so
// repeated flags such as `--env A 1 --env B 2` keep their grouping. Fields
// whose pointer type implements flag.Value have Set called with the flag's
// value, or with "true" if it was given bare.
func ParseArgs(args []string, cfg any) error {
	specs, err := argSpecs(cfg)
	if err != nil {
		return err
	}

	var positional []string
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if !looksLikeFlag(tok) {
			positional = append(positional, tok)
			continue
		}
		if tok == "-h" || tok == "--help" {
			return ErrHelp
		}

		name, inline, hasInline := strings.Cut(tok, "=")
		spec, ok := specs[name]
		if !ok {
			return fmt.Errorf("unrecognized argument %q", tok)
		}

		var values []string
		if hasInline {
			if spec.nargs == "0" {
				return fmt.Errorf("%s does not take a value", spec.name)
			}
			values = append(values, inline)
		}
		for i+1 < len(args) && spec.wants(len(values)) && args[i+1] != "--" && !looksLikeFlag(args[i+1]) {
			i++
			values = append(values, args[i])
		}
		if err := spec.check(len(values)); err != nil {
			return err
		}
		if err := spec.assign(cfg, values); err != nil {
			return fmt.Errorf("setting %s: %w", spec.name, err)
		}
	}

	return assignPositional(cfg, positional)
}

// Flags returns urfave/cli flags describing the `flag` tagged fields of cfg.
// They are only used for help output.
func Flags(cfg any) []cli.Flag {
	specs, err := argSpecs(cfg)
	if err != nil {
		return nil
	}

	names, _ := reflections.FieldsDeep(cfg)
	var flags []cli.Flag
	for _, fieldName := range names {
		spec := findSpec(specs, fieldName)
		if spec == nil {
			continue
		}
		name := strings.TrimPrefix(spec.name, "--")
		if spec.nargs == "0" {
			flags = append(flags, cli.BoolFlag{Name: name, Usage: spec.usage})
			continue
		}
		flags = append(flags, cli.StringFlag{Name: name, Usage: spec.usage})
	}
	// urfave/cli appends its help flag to this slice on every run.
	return slices.Clip(flags)
}

func findSpec(specs map[string]*argSpec, fieldName string) *argSpec {
	for _, s := range specs {
		if s.field == fieldName {
			return s
		}
	}
	return nil
}

func argSpecs(cfg any) (map[string]*argSpec, error) {
	fields, err := reflections.FieldsDeep(cfg)
	if err != nil {
		return nil, fmt.Errorf("listing config fields: %w", err)
	}

	specs := make(map[string]*argSpec)
	for _, fieldName := range fields {
		name, _ := reflections.GetFieldTag(cfg, fieldName, "flag")
		if name == "" {
			continue
		}
		kind, err := fieldKind(cfg, fieldName)
		if err != nil {
			return nil, err
		}

		spec := &argSpec{
			field: fieldName,
			name:  "--" + name,
			kind:  kind,
		}
		spec.usage, _ = reflections.GetFieldTag(cfg, fieldName, "usage")
		spec.nargs, _ = reflections.GetFieldTag(cfg, fieldName, "nargs")
		if spec.nargs == "" {
			spec.nargs = defaultNargs(kind)
		}
		if kind == "bool" && spec.nargs != "0" {
			return nil, fmt.Errorf("field %s: bool flags take no values", fieldName)
		}
		specs[spec.name] = spec
	}
	return specs, nil
}

// fieldKind returns the type of the field as a string, or "value" for
// fields whose pointer type implements flag.Value.
func fieldKind(cfg any, fieldName string) (string, error) {
	t, err := reflections.GetFieldType(cfg, fieldName)
	if err != nil {
		return "", fmt.Errorf("getting the type of struct field %q: %w", fieldName, err)
	}
	switch t {
	case "bool", "string", "*string", "[]string", "[][]string":
		return t, nil
	}

	f := reflect.ValueOf(cfg).Elem().FieldByName(fieldName)
	if f.Kind() == reflect.Pointer && f.Type().Implements(flagValueType) {
		return "value", nil
	}
	return "", fmt.Errorf("field %s: unsupported flag type %s", fieldName, t)
}

func defaultNargs(kind string) string {
	switch kind {
	case "bool":
		return "0"
	case "[]string", "[][]string":
		return "+"
	case "value":
		return "?"
	default:
		return "1"
	}
}

// wants reports whether the flag would take another value after n.
func (s *argSpec) wants(n int) bool {
	switch s.nargs {
	case "*", "+":
		return true
	case "?":
		return n < 1
	}
	count, _ := strconv.Atoi(s.nargs)
	return n < count
}

func (s *argSpec) check(n int) error {
	switch s.nargs {
	case "*":
		return nil
	case "+":
		if n == 0 {
			return fmt.Errorf("%s expects at least one value", s.name)
		}
		return nil
	case "?":
		return nil
	}

	count, err := strconv.Atoi(s.nargs)
	if err != nil {
		return fmt.Errorf("%s: invalid nargs %q", s.name, s.nargs)
	}
	if n != count {
		switch count {
		case 0:
			return fmt.Errorf("%s does not take a value", s.name)
		case 1:
			return fmt.Errorf("%s expects one value", s.name)
		}
		return fmt.Errorf("%s expects %d values (got %d)", s.name, count, n)
	}
	return nil
}

func (s *argSpec) assign(cfg any, values []string) error {
	switch s.kind {
	case "bool":
		return reflections.SetField(cfg, s.field, true)

	case "string":
		return reflections.SetField(cfg, s.field, strings.Join(values, " "))

	case "*string":
		v := strings.Join(values, " ")
		return reflections.SetField(cfg, s.field, &v)

	case "[]string":
		existing, err := reflections.GetField(cfg, s.field)
		if err != nil {
			return err
		}
		list, _ := existing.([]string)
		return reflections.SetField(cfg, s.field, append(slices.Clip(list), values...))

	case "[][]string":
		existing, err := reflections.GetField(cfg, s.field)
		if err != nil {
			return err
		}
		groups, _ := existing.([][]string)
		return reflections.SetField(cfg, s.field, append(groups, append([]string{}, values...)))

	case "value":
		f := reflect.ValueOf(cfg).Elem().FieldByName(s.field)
		if f.IsNil() {
			f.Set(reflect.New(f.Type().Elem()))
		}
		v := "true"
		if len(values) > 0 {
			v = values[0]
		}
		return f.Interface().(flag.Value).Set(v)
	}
	return fmt.Errorf("unsupported field kind %s", s.kind)
}

// assignPositional hands out the arguments that were not taken by a flag to
// the `arg` tagged fields. `arg:"*"` takes all of them.
func assignPositional(cfg any, positional []string) error {
	fields, _ := reflections.FieldsDeep(cfg)

	taken := 0
	all := false
	for _, fieldName := range fields {
		tag, _ := reflections.GetFieldTag(cfg, fieldName, "arg")
		if tag == "" {
			continue
		}

		if tag == "*" {
			all = true
			if err := reflections.SetField(cfg, fieldName, slices.Clone(positional)); err != nil {
				return fmt.Errorf("setting positional arguments: %w", err)
			}
			continue
		}

		idx, err := strconv.Atoi(tag)
		if err != nil {
			return fmt.Errorf("field %s: invalid arg index %q", fieldName, tag)
		}
		taken = max(taken, idx+1)
		if idx < len(positional) {
			if err := reflections.SetField(cfg, fieldName, positional[idx]); err != nil {
				return fmt.Errorf("setting positional argument %d: %w", idx, err)
			}
		}
	}

	if !all && len(positional) > taken {
		return fmt.Errorf("unrecognized arguments: %s", strings.Join(positional[taken:], " "))
	}
	return nil
}

// looksLikeFlag reports whether tok starts a new flag. Negative numbers are
// values, so `--retry-automatic-exit-status -1` works.
func looksLikeFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err != nil
}
