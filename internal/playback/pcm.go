package playback

import (
	"encoding/binary"
	"math"
)

// EncodeFloat32LE encodes samples as 32-bit IEEE floats, little endian.
func EncodeFloat32LE(samples []float32) []byte {
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(s))
	}
	return buf
}
