package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/minicodemonkey/tune/internal/config"
	"github.com/minicodemonkey/tune/internal/paths"
	"github.com/minicodemonkey/tune/internal/wavfile"
	"go.uber.org/zap"
)

// RenderOptions contains configuration for the render command.
type RenderOptions struct {
	ConfigPath string // Config file (default: ~/.tune/config.yaml)
	Output     string // WAV file to write
	Watch      bool   // Re-render whenever the config file changes
	Logger     *zap.Logger
	Out        io.Writer // Progress messages (default: stdout)
}

// RunRender writes the configured score to a WAV file. With Watch set it
// keeps running, re-rendering on every config change, until ctx is done.
func RunRender(ctx context.Context, opts RenderOptions) error {
	if opts.Output == "" {
		return errors.New("no output file given (use -o FILE.wav)")
	}
	logger := loggerOrNop(opts.Logger)
	out := writerOrStdout(opts.Out)

	if !opts.Watch {
		path, cfg, err := loadConfig(opts.ConfigPath)
		if err != nil {
			return err
		}
		logger.Debug("rendering", zap.String("config", path), zap.String("output", opts.Output))
		return render(cfg, opts.Output, out)
	}

	path := paths.Resolve(opts.ConfigPath)
	if !config.Exists(path) {
		return fmt.Errorf("config not found at %s. Use 'tune init' to create it first", path)
	}

	watcher, err := config.NewWatcher(path, logger)
	if err != nil {
		return fmt.Errorf("failed to watch config: %w", err)
	}
	defer watcher.Stop()
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to watch config: %w", err)
	}
	logger.Info("watching config", zap.String("config", path), zap.String("output", opts.Output))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if ev.Error != nil {
				logger.Warn("config not rendered", zap.Error(ev.Error))
				continue
			}
			if err := render(ev.Config, opts.Output, out); err != nil {
				logger.Error("render failed", zap.Error(err))
			}
		}
	}
}

func render(cfg *config.Config, output string, out io.Writer) error {
	buf, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build score: %w", err)
	}
	if err := wavfile.WriteFile(output, buf, int(math.Round(cfg.SampleRate))); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Fprintf(out, "Wrote %s (%s, %d samples at %g Hz)\n", output, buf.Duration(cfg.SampleRate).Round(time.Millisecond), len(buf), cfg.SampleRate)
	return nil
}
