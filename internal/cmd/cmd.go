// Package cmd provides the command implementations behind the tune CLI:
// play, render, show, init and edit.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/minicodemonkey/tune/internal/config"
	"github.com/minicodemonkey/tune/internal/paths"
	"go.uber.org/zap"
)

// loadConfig resolves path, loads the configuration and validates it.
func loadConfig(path string) (string, *config.Config, error) {
	path = paths.Resolve(path)
	cfg, err := config.Load(path)
	if err != nil {
		return path, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return path, nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return path, cfg, nil
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func writerOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
