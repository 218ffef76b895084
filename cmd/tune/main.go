package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/minicodemonkey/tune/internal/cmd"
	"github.com/minicodemonkey/tune/internal/logging"
)

const usage = `tune plays a melody built from sine tones.

Usage:
  tune [play] [flags]       Play the configured score
  tune render -o FILE.wav   Write the score to a WAV file
  tune show                 Print the configuration
  tune init                 Create ~/.tune/config.yaml
  tune edit                 Edit the configuration

Flags:
  --config PATH   Config file (default: ~/.tune/config.yaml)
  --verbose       Debug logging
  --tui           Show the now-playing view (play, default when stdout is a terminal)
  -o FILE         Output file (render)
  --watch         Re-render whenever the config changes (render)
  --force         Overwrite an existing config (init)
  --editor CMD    Editor command (edit)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	name := "play"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		name, args = args[0], args[1:]
	}

	switch name {
	case "play":
		return runPlay(args)
	case "render":
		return runRender(args)
	case "show":
		return runShow(args)
	case "init":
		return runInit(args)
	case "edit":
		return runEdit(args)
	case "help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", name)
	}
}

func newFlagSet(name string) (*flag.FlagSet, *string, *bool) {
	fs := flag.NewFlagSet("tune "+name, flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	configPath := fs.String("config", "", "config file")
	verbose := fs.Bool("verbose", false, "debug logging")
	return fs, configPath, verbose
}

func isTerminal() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

func runPlay(args []string) error {
	fs, configPath, verbose := newFlagSet("play")
	tui := fs.Bool("tui", isTerminal(), "show the now-playing view")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := logging.New(*verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	// Log lines would tear through the now-playing view.
	if *tui && !*verbose {
		logger = nil
	}

	return cmd.RunPlay(cmd.PlayOptions{
		ConfigPath: *configPath,
		TUI:        *tui,
		Logger:     logger,
	})
}

func runRender(args []string) error {
	fs, configPath, verbose := newFlagSet("render")
	output := fs.String("o", "", "output WAV file")
	watch := fs.Bool("watch", false, "re-render whenever the config changes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" && fs.NArg() > 0 {
		*output = fs.Arg(0)
	}

	logger, err := logging.New(*verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cmd.RunRender(ctx, cmd.RenderOptions{
		ConfigPath: *configPath,
		Output:     *output,
		Watch:      *watch,
		Logger:     logger,
	})
}

func runShow(args []string) error {
	fs, configPath, _ := newFlagSet("show")
	color := fs.Bool("color", isTerminal(), "syntax-highlight the YAML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return cmd.RunShow(cmd.ShowOptions{ConfigPath: *configPath, Color: *color})
}

func runInit(args []string) error {
	fs, configPath, _ := newFlagSet("init")
	force := fs.Bool("force", false, "overwrite an existing config")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return cmd.RunInit(cmd.InitOptions{ConfigPath: *configPath, Force: *force})
}

func runEdit(args []string) error {
	fs, configPath, _ := newFlagSet("edit")
	editor := fs.String("editor", "", "editor command")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return cmd.RunEdit(cmd.EditOptions{ConfigPath: *configPath, Editor: *editor})
}
