package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/minicodemonkey/tune/internal/score"
	"gopkg.in/yaml.v3"
)

// ShowOptions contains configuration for the show command.
type ShowOptions struct {
	ConfigPath string    // Config file (default: ~/.tune/config.yaml)
	Color      bool      // Syntax-highlight the YAML
	Out        io.Writer // Default: stdout
}

// RunShow prints a summary of the configuration followed by the full
// document as YAML.
func RunShow(opts ShowOptions) error {
	out := writerOrStdout(opts.Out)

	path, cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	notes, err := cfg.Notes()
	if err != nil {
		return err
	}

	title := cfg.Score.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(out, "%s\n", title)
	fmt.Fprintf(out, "  config:      %s\n", path)
	fmt.Fprintf(out, "  sample rate: %g Hz\n", cfg.SampleRate)
	fmt.Fprintf(out, "  volume:      %g\n", cfg.Volume)
	fmt.Fprintf(out, "  tempo:       %g bpm (%gs per beat)\n", cfg.BPM, cfg.Tempo().SecondsPerBeat())
	fmt.Fprintf(out, "  backend:     %s\n", cfg.Backend)
	fmt.Fprintf(out, "  notes:       %d (%s)\n", len(notes), score.Duration(notes, cfg.Tempo()))

	counts := cfg.Score.Notes()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "    %-10s %d notes\n", name+":", counts[name])
	}
	fmt.Fprintln(out)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if !opts.Color {
		_, err = out.Write(data)
		return err
	}
	return quick.Highlight(out, string(data), "yaml", "terminal256", "monokai")
}
