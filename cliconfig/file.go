package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/buildkite/bkyml/internal/osutil"
	"github.com/joho/godotenv"
)

// envPrefix is the prefix of bkyml's environment variables, lowercased.
const envPrefix = "bkyml_"

// File is a configuration file in dotenv format, with one line per global
// flag. Keys may be written like the flag's environment variable:
//
//	# ~/.bkyml.cfg
//	BKYML_LOG_LEVEL=debug
//	no_color=true
type File struct {
	// The path to the file
	Path string

	// The key/values loaded from the file
	Config map[string]string
}

// Load reads the file. Keys are normalized to flag names, so
// `BKYML_LOG_LEVEL`, `LOG_LEVEL` and `log_level` all set --log-level.
func (f *File) Load() error {
	absolutePath, err := f.AbsolutePath()
	if err != nil {
		return fmt.Errorf("getting absolute path for %s: %w", f.Path, err)
	}

	file, err := os.Open(absolutePath)
	if err != nil {
		return fmt.Errorf("opening file %s: %w", f.Path, err)
	}
	defer file.Close() //nolint:errcheck // it's only open for reading

	values, err := godotenv.Parse(file)
	if err != nil {
		return fmt.Errorf("parsing config file %s: %w", f.Path, err)
	}

	f.Config = make(map[string]string, len(values))
	for key, value := range values {
		f.Config[flagName(key)] = value
	}
	return nil
}

// flagName turns a dotenv style key into the name of a flag.
func flagName(key string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, envPrefix)
	return strings.ReplaceAll(key, "_", "-")
}

// AbsolutePath returns the absolute path of the file, with environment
// variables and a leading "~" expanded.
func (f File) AbsolutePath() (string, error) {
	path, err := osutil.ExpandHome(os.ExpandEnv(f.Path))
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", f.Path, err)
	}
	return filepath.Abs(path)
}

func (f File) Exists() bool {
	absolutePath, err := f.AbsolutePath()
	if err != nil {
		return false
	}
	return osutil.FileExists(absolutePath)
}
