package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-audio/wav"
)

func TestRunRender(t *testing.T) {
	output := filepath.Join(t.TempDir(), "song.wav")
	var out bytes.Buffer

	opts := RenderOptions{
		ConfigPath: writeTestConfig(t, shortConfig),
		Output:     output,
		Out:        &out,
	}
	if err := RunRender(context.Background(), opts); err != nil {
		t.Fatalf("RunRender() returned error: %v", err)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if dec.SampleRate != 8000 {
		t.Errorf("Expected sample rate 8000, got %d", dec.SampleRate)
	}
	if len(buf.Data) != shortConfigSamples {
		t.Errorf("Expected %d samples, got %d", shortConfigSamples, len(buf.Data))
	}
	if !strings.Contains(out.String(), "Wrote "+output) {
		t.Errorf("Expected confirmation message, got %q", out.String())
	}
}

func TestRunRenderRequiresOutput(t *testing.T) {
	err := RunRender(context.Background(), RenderOptions{ConfigPath: writeTestConfig(t, shortConfig)})
	if err == nil {
		t.Error("Expected error without an output file")
	}
}

func TestRunRenderWatch(t *testing.T) {
	output := filepath.Join(t.TempDir(), "song.wav")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- RunRender(ctx, RenderOptions{
			ConfigPath: writeTestConfig(t, shortConfig),
			Output:     output,
			Watch:      true,
			Out:        &bytes.Buffer{},
		})
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if info, err := os.Stat(output); err == nil && info.Size() > 44 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for the initial render")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("RunRender() returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("RunRender did not stop after cancel")
	}
}

func TestRunRenderWatchMissingConfig(t *testing.T) {
	err := RunRender(context.Background(), RenderOptions{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		Output:     filepath.Join(t.TempDir(), "song.wav"),
		Watch:      true,
	})
	if err == nil {
		t.Error("Expected error when watching a missing config")
	}
}
