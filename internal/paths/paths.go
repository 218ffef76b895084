// Package paths resolves the on-disk locations tune reads and writes.
package paths

import (
	"os"
	"path/filepath"
)

// homeDir returns the user's home directory, panicking if it can't be resolved.
var homeDir = func() string {
	h, err := os.UserHomeDir()
	if err != nil {
		panic("cannot resolve home directory: " + err.Error())
	}
	return h
}

// SetHomeDir overrides the home directory used by all path functions.
// Intended for testing. Returns a restore function.
func SetHomeDir(dir string) func() {
	old := homeDir
	homeDir = func() string { return dir }
	return func() { homeDir = old }
}

// TuneDir returns ~/.tune/
func TuneDir() string {
	return filepath.Join(homeDir(), ".tune")
}

// ConfigPath returns ~/.tune/config.yaml
func ConfigPath() string {
	return filepath.Join(TuneDir(), "config.yaml")
}

// Resolve returns path when set and ConfigPath otherwise.
func Resolve(path string) string {
	if path == "" {
		return ConfigPath()
	}
	return path
}
