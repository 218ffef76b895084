//go:build !portaudio

package playback

import "errors"

// PortAudioBackend stands in for the PortAudio backend in builds without
// the portaudio tag.
type PortAudioBackend struct{}

// NewPortAudioBackend returns a Backend whose devices never open; rebuild
// with -tags portaudio for PortAudio output.
func NewPortAudioBackend() Backend {
	return PortAudioBackend{}
}

// OpenDevice implements Backend.
func (PortAudioBackend) OpenDevice(int) (Device, error) {
	return nil, errors.New("portaudio support not compiled in (rebuild with -tags portaudio)")
}
