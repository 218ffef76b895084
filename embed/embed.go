// Package embed provides the assets compiled into the tune binary.
package embed

import (
	_ "embed"
)

//go:embed default.yaml
var defaultConfig []byte

// DefaultConfig returns the built-in configuration document, including the
// default score.
func DefaultConfig() []byte {
	out := make([]byte, len(defaultConfig))
	copy(out, defaultConfig)
	return out
}
