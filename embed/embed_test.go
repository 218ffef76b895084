package embed

import (
	"strings"
	"testing"
)

func TestDefaultConfigNotEmpty(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg) == 0 {
		t.Fatal("Expected default config to be embedded and non-empty")
	}

	for _, key := range []string{"sampleRate:", "volume:", "bpm:", "score:", "arrangement:"} {
		if !strings.Contains(string(cfg), key) {
			t.Errorf("Expected default config to contain %q", key)
		}
	}
}

func TestDefaultConfigReturnsCopy(t *testing.T) {
	a := DefaultConfig()
	a[0] = '!'

	b := DefaultConfig()
	if b[0] == '!' {
		t.Error("Expected DefaultConfig to return an independent copy")
	}
}
