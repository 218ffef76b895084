package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minicodemonkey/tune/embed"
	"github.com/minicodemonkey/tune/internal/config"
	"github.com/minicodemonkey/tune/internal/paths"
)

// InitOptions contains configuration for the init command.
type InitOptions struct {
	ConfigPath string    // Config file to create (default: ~/.tune/config.yaml)
	Force      bool      // Overwrite an existing config
	Out        io.Writer // Default: stdout
}

// RunInit writes the built-in configuration, comments included, so it can
// be edited.
func RunInit(opts InitOptions) error {
	out := writerOrStdout(opts.Out)
	path := paths.Resolve(opts.ConfigPath)

	if config.Exists(path) && !opts.Force {
		return fmt.Errorf("config already exists at %s. Use 'tune edit' to modify it or --force to overwrite", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, embed.DefaultConfig(), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(out, "Created %s\n", path)
	fmt.Fprintln(out, "Run 'tune edit' to change the score, or 'tune' to play it.")
	return nil
}
