package cmd

import (
	"fmt"
	"io"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/minicodemonkey/tune/internal/playback"
	"github.com/minicodemonkey/tune/internal/score"
	"github.com/minicodemonkey/tune/internal/tui"
	"go.uber.org/zap"
)

// PlayOptions contains configuration for the play command.
type PlayOptions struct {
	ConfigPath string           // Config file (default: ~/.tune/config.yaml)
	TUI        bool             // Show the now-playing view
	Backend    playback.Backend // Overrides the backend named in the config
	Logger     *zap.Logger
	Out        io.Writer // Where the now-playing view is drawn (default: stdout)
}

// RunPlay builds the configured score and plays it to completion.
func RunPlay(opts PlayOptions) error {
	logger := loggerOrNop(opts.Logger)

	path, cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	notes, err := cfg.Notes()
	if err != nil {
		return err
	}
	buf, err := score.Build(notes, cfg.Tempo(), cfg.Params())
	if err != nil {
		return fmt.Errorf("failed to build score: %w", err)
	}
	logger.Info("score built",
		zap.String("config", path),
		zap.String("title", cfg.Score.Title),
		zap.Int("notes", len(notes)),
		zap.Int("samples", len(buf)),
		zap.Duration("duration", buf.Duration(cfg.SampleRate)),
	)

	backend := opts.Backend
	if backend == nil {
		backend, err = playback.NewBackend(cfg.Backend)
		if err != nil {
			return err
		}
	}

	player := playback.NewPlayer(backend, logger)
	player.PollInterval = cfg.PollInterval
	rate := int(math.Round(cfg.SampleRate))

	if !opts.TUI {
		if err := player.Play(buf, rate); err != nil {
			return err
		}
		logger.Info("playback complete")
		return nil
	}

	title := cfg.Score.Title
	if title == "" {
		title = "tune"
	}
	view := tui.NewNowPlaying(title, notes, cfg.Tempo())
	return tui.Run(view, func(onProgress func(time.Duration)) error {
		player.OnProgress = onProgress
		return player.Play(buf, rate)
	}, tea.WithOutput(writerOrStdout(opts.Out)))
}
