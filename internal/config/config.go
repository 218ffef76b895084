// Package config loads and saves tune's YAML configuration: synthesis
// settings, the playback backend and the score to play.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/minicodemonkey/tune/embed"
	"github.com/minicodemonkey/tune/internal/score"
	"github.com/minicodemonkey/tune/internal/synth"
	"gopkg.in/yaml.v3"
)

// Backends lists the playback backend names accepted in Config.Backend.
var Backends = []string{"oto", "portaudio"}

// DefaultPollInterval is how often playback state is checked when the
// configuration doesn't say otherwise.
const DefaultPollInterval = 10 * time.Millisecond

// Config holds every setting of a tune run.
type Config struct {
	SampleRate   float64           `yaml:"sampleRate"`
	Volume       float64           `yaml:"volume"`
	BPM          float64           `yaml:"bpm"`
	Backend      string            `yaml:"backend,omitempty"`
	PollInterval time.Duration     `yaml:"pollInterval,omitempty"`
	Score        score.Arrangement `yaml:"score"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(embed.DefaultConfig(), &cfg); err != nil {
		panic("config: embedded default is invalid: " + err.Error())
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return &cfg
}

// Parse decodes a configuration document. Settings the document leaves out
// keep their built-in values; a document without a score plays the default one.
func Parse(data []byte) (*Config, error) {
	def := Default()

	cfg := *def
	cfg.Score = score.Arrangement{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if len(cfg.Score.Parts) == 0 && len(cfg.Score.Sections) == 0 {
		cfg.Score = def.Score
	}
	return &cfg, nil
}

// Exists checks if the config file exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads the config from path.
// Returns Default() when the file doesn't exist (no error).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Params returns the synthesis settings.
func (c *Config) Params() synth.Params {
	return synth.Params{SampleRate: c.SampleRate, Volume: c.Volume}
}

// Tempo returns the playing speed.
func (c *Config) Tempo() score.Tempo {
	return score.Tempo{BPM: c.BPM}
}

// Notes resolves the score into the notes it plays.
func (c *Config) Notes() ([]score.Note, error) {
	return c.Score.Resolve()
}

// Build synthesizes the whole score into one buffer.
func (c *Config) Build() (score.Buffer, error) {
	notes, err := c.Notes()
	if err != nil {
		return nil, err
	}
	return score.Build(notes, c.Tempo(), c.Params())
}

// Validate checks every setting and that the score resolves.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	// Devices and WAV files take whole-number rates.
	if c.SampleRate < 1 || c.SampleRate != math.Trunc(c.SampleRate) {
		return fmt.Errorf("%w: sample rate must be a whole number of Hz, got %v", synth.ErrInvalidArgument, c.SampleRate)
	}
	if err := c.Tempo().Validate(); err != nil {
		return err
	}
	if !validBackend(c.Backend) {
		return fmt.Errorf("%w: unknown backend %q (want one of %v)", synth.ErrInvalidArgument, c.Backend, Backends)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("%w: poll interval must not be negative, got %v", synth.ErrInvalidArgument, c.PollInterval)
	}
	if _, err := c.Notes(); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	return nil
}

func validBackend(name string) bool {
	for _, b := range Backends {
		if b == name {
			return true
		}
	}
	return false
}
