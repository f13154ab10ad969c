package embcache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Cached vectors are stored as a one-byte format version, a little-endian
// uint32 dimension and the float32 components.
const (
	formatV1   byte = 1
	headerSize      = 5
)

var errCorrupt = errors.New("embcache: corrupt entry")

func encodeVector(v []float32) []byte {
	buf := make([]byte, headerSize+4*len(v))
	buf[0] = formatV1
	binary.LittleEndian.PutUint32(buf[1:headerSize], uint32(len(v))) //nolint:gosec // embedding dimensions fit uint32
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[headerSize+4*i:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(b []byte) ([]float32, error) {
	if len(b) < headerSize || b[0] != formatV1 {
		return nil, fmt.Errorf("%w: bad header", errCorrupt)
	}
	dim := int(binary.LittleEndian.Uint32(b[1:headerSize]))
	if dim == 0 || len(b) != headerSize+4*dim {
		return nil, fmt.Errorf("%w: %d bytes for dimension %d", errCorrupt, len(b), dim)
	}
	v := make([]float32, dim)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[headerSize+4*i:]))
	}
	return v, nil
}
