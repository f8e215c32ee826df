// Package cliconfig binds command line flags, environment variables and
// configuration files to config structs.
//
// It is intended for internal use by bkyml only.
package cliconfig

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/oleiade/reflections"
	"github.com/urfave/cli"
)

// Loader fills a config struct from `cli` tagged fields. Values from a
// config file are used unless the same flag was given on the command line or
// through its environment variable.
type Loader struct {
	// The context that is passed when using a urfave/cli action. For global
	// flags this is the app's context (the parent of a command's context).
	CLI *cli.Context

	// The struct that the config values will be loaded into
	Config any

	// Paths to try, in order, when no --config flag was given
	DefaultConfigFilePaths []string

	// The file that was used when loading this configuration
	File *File
}

// Load loads the config from the CLI and any config file that is present,
// then applies `validate` rules.
func (l *Loader) Load() error {
	if path := l.CLI.String("config"); path != "" {
		file := File{Path: path}

		// A file passed in explicitly has to exist.
		if !file.Exists() {
			absolutePath, _ := file.AbsolutePath()
			return fmt.Errorf("a configuration file could not be found at: %q", absolutePath)
		}
		l.File = &file
	} else {
		for _, path := range l.DefaultConfigFilePaths {
			file := File{Path: path}
			if file.Exists() {
				l.File = &file
				break
			}
		}
	}

	if l.File != nil {
		if err := l.File.Load(); err != nil {
			return fmt.Errorf("loading config file: %w", err)
		}
	}

	fields, err := reflections.FieldsDeep(l.Config)
	if err != nil {
		return fmt.Errorf("listing config fields: %w", err)
	}

	for _, fieldName := range fields {
		cliName, _ := reflections.GetFieldTag(l.Config, fieldName, "cli")
		if cliName != "" {
			if err := l.setFieldValueFromCLI(fieldName, cliName); err != nil {
				return fmt.Errorf("setting config field %s: %w", fieldName, err)
			}
		}

		validationRules, _ := reflections.GetFieldTag(l.Config, fieldName, "validate")
		if validationRules != "" {
			label := cliName
			if label == "" {
				label = fieldName
			}
			if err := l.validateField(fieldName, label, validationRules); err != nil {
				return err
			}
		}
	}

	return nil
}

func (l Loader) setFieldValueFromCLI(fieldName, cliName string) error {
	fieldKind, err := reflections.GetFieldKind(l.Config, fieldName)
	if err != nil {
		return fmt.Errorf("getting the kind of struct field %q: %w", fieldName, err)
	}

	var value any

	// Start with the config file's value, if it has one.
	if l.File != nil {
		if configFileValue, ok := l.File.Config[cliName]; ok {
			switch fieldKind {
			case reflect.String:
				value = configFileValue
			case reflect.Bool:
				b, err := strconv.ParseBool(configFileValue)
				if err != nil {
					return fmt.Errorf("config file value %s=%q is not a boolean", cliName, configFileValue)
				}
				value = b
			default:
				return fmt.Errorf("unable to convert string to type %s", fieldKind)
			}
		}
	}

	// Flags and environment variables win over the config file.
	if value == nil || l.CLI.IsSet(cliName) {
		switch fieldKind {
		case reflect.String:
			value = l.CLI.String(cliName)
		case reflect.Bool:
			value = l.CLI.Bool(cliName)
		default:
			return fmt.Errorf("unable to handle type: %s", fieldKind)
		}
	}

	if err := reflections.SetField(l.Config, fieldName, value); err != nil {
		return fmt.Errorf("setting value field %q to %q: %w", fieldName, value, err)
	}
	return nil
}

// Errorf returns an error whose message points at the app's help.
func (l Loader) Errorf(format string, v ...any) error {
	suffix := fmt.Sprintf(" See: `%s --help`", l.CLI.App.Name)
	return fmt.Errorf(format+suffix, v...)
}

func (l Loader) fieldValueIsEmpty(fieldName string) bool {
	value, _ := reflections.GetField(l.Config, fieldName)
	return reflect.ValueOf(value).IsZero()
}

// validateField applies comma separated rules: "required", and
// "oneof=a|b|c" which allows an empty value.
func (l Loader) validateField(fieldName, label, validationRules string) error {
	for rule := range strings.SplitSeq(validationRules, ",") {
		name, arg, _ := strings.Cut(rule, "=")
		switch name {
		case "required":
			if l.fieldValueIsEmpty(fieldName) {
				return l.Errorf("Missing %s.", label)
			}

		case "oneof":
			value, _ := reflections.GetField(l.Config, fieldName)
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("oneof validation only works on string fields")
			}
			allowed := strings.Split(arg, "|")
			if s != "" && !slices.Contains(allowed, s) {
				return l.Errorf("Invalid %s %q (want one of %s).", label, s, strings.Join(allowed, ", "))
			}

		default:
			return fmt.Errorf("unknown config validation rule %q", rule)
		}
	}

	return nil
}
