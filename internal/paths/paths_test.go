package paths

import (
	"path/filepath"
	"testing"
)

func TestConfigPath(t *testing.T) {
	restore := SetHomeDir("/home/test")
	defer restore()

	if got, want := TuneDir(), filepath.Join("/home/test", ".tune"); got != want {
		t.Errorf("TuneDir() = %q, want %q", got, want)
	}
	if got, want := ConfigPath(), filepath.Join("/home/test", ".tune", "config.yaml"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestResolve(t *testing.T) {
	restore := SetHomeDir("/home/test")
	defer restore()

	if got := Resolve("song.yaml"); got != "song.yaml" {
		t.Errorf("Resolve(%q) = %q", "song.yaml", got)
	}
	if got := Resolve(""); got != ConfigPath() {
		t.Errorf("Resolve(\"\") = %q, want %q", got, ConfigPath())
	}
}

func TestSetHomeDirRestore(t *testing.T) {
	restoreOuter := SetHomeDir("/outer")
	defer restoreOuter()

	restore := SetHomeDir("/inner")
	if got := TuneDir(); got != filepath.Join("/inner", ".tune") {
		t.Errorf("TuneDir() = %q after override", got)
	}
	restore()
	if got := TuneDir(); got != filepath.Join("/outer", ".tune") {
		t.Errorf("TuneDir() = %q after restore", got)
	}
}
