package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/minicodemonkey/tune/internal/config"
	"github.com/minicodemonkey/tune/internal/paths"
	"github.com/minicodemonkey/tune/internal/score"
)

// EditOptions contains configuration for the edit command.
type EditOptions struct {
	ConfigPath string    // Config file (default: ~/.tune/config.yaml)
	Editor     string    // Editor command (default: $VISUAL, $EDITOR, then vi)
	Out        io.Writer // Default: stdout
}

// RunEdit opens the config in an editor and validates the result.
func RunEdit(opts EditOptions) error {
	out := writerOrStdout(opts.Out)
	path := paths.Resolve(opts.ConfigPath)

	if !config.Exists(path) {
		return fmt.Errorf("config not found at %s. Use 'tune init' to create it first", path)
	}

	editor := opts.Editor
	if editor == "" {
		editor = defaultEditor()
	}

	if err := runInteractive(editor, path); err != nil {
		return fmt.Errorf("editor %q failed: %w", editor, err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("config is no longer valid: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config is no longer valid: %w", err)
	}
	notes, err := cfg.Notes()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Config OK: %d notes, %s\n", len(notes), score.Duration(notes, cfg.Tempo()))
	return nil
}

func defaultEditor() string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return "vi"
}

// runInteractive launches an editor attached to the terminal. The editor
// setting may carry arguments, e.g. "code --wait".
func runInteractive(editor, path string) error {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return errors.New("empty editor command")
	}

	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
