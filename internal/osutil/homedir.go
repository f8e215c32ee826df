// Package osutil holds small helpers for locating bkyml's configuration
// files.
package osutil

import (
	"os"
	"path/filepath"
	"strings"
)

// UserHomeDir is similar to os.UserHomeDir, but prefers $HOME when available
// over other options (such as USERPROFILE on Windows).
func UserHomeDir() (string, error) {
	if h := os.Getenv("HOME"); h != "" {
		return h, nil
	}
	return os.UserHomeDir()
}

// ExpandHome replaces a leading "~" in path with the user's home directory.
// Paths such as "~alice/x" are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// FileExists returns whether or not a file exists on the filesystem. Any
// error from os.Stat counts as the file not being there.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
