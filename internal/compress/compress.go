package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/lemmago/internal/hash"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrCorrupt is returned when an envelope fails to decode.
var ErrCorrupt = errors.New("compress: corrupt envelope")

// Algorithm identifies the payload compression.
type Algorithm uint8

const (
	// None stores the payload as is.
	None Algorithm = iota
	// LZ4 uses LZ4 block compression. Fast to decode.
	LZ4
	// Zstd uses Zstandard. Better ratio.
	Zstd
)

// String returns the algorithm name.
func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// ParseAlgorithm maps a name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	}
	return None, fmt.Errorf("compress: unknown algorithm %q", name)
}

const headerSize = 16

var magic = []byte("LEMZ")

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	return dec
}

// IsEnvelope reports whether data starts with the envelope magic.
func IsEnvelope(data []byte) bool {
	return len(data) >= headerSize && bytes.Equal(data[:4], magic)
}

// Encode wraps data in an envelope. When the chosen algorithm does not
// shrink the payload it is stored uncompressed.
func Encode(data []byte, algo Algorithm) ([]byte, error) {
	if uint64(len(data)) > uint64(^uint32(0)) {
		return nil, fmt.Errorf("compress: payload of %d bytes is too large", len(data))
	}

	if algo > Zstd {
		return nil, fmt.Errorf("compress: unknown algorithm %d", algo)
	}
	if len(data) == 0 {
		algo = None
	}

	var payload []byte
	switch algo {
	case None:
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		payload = buf[:n]
	case Zstd:
		enc := getZstdEncoder()
		payload = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	}

	// lz4 reports 0 for incompressible input.
	if len(payload) == 0 || len(payload) >= len(data) {
		algo, payload = None, data
	}

	out := make([]byte, headerSize+len(payload))
	copy(out, magic)
	out[4] = byte(algo)
	binary.LittleEndian.PutUint32(out[8:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[12:], hash.Sum(data))
	copy(out[headerSize:], payload)
	return out, nil
}

// Decode unpacks an envelope produced by Encode.
func Decode(data []byte) ([]byte, error) {
	if !IsEnvelope(data) {
		return nil, fmt.Errorf("%w: missing magic", ErrCorrupt)
	}
	algo := Algorithm(data[4])
	size := binary.LittleEndian.Uint32(data[8:])
	sum := binary.LittleEndian.Uint32(data[12:])
	payload := data[headerSize:]

	var out []byte
	switch algo {
	case None:
		out = payload
	case LZ4:
		out = make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		out = out[:n]
	case Zstd:
		dec := getZstdDecoder()
		var err error
		out, err = dec.DecodeAll(payload, make([]byte, 0, size))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %d", ErrCorrupt, algo)
	}

	if uint32(len(out)) != size {
		return nil, fmt.Errorf("%w: size %d, want %d", ErrCorrupt, len(out), size)
	}
	if !hash.Verify(out, sum) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	return out, nil
}

// Unwrap decodes data if it is an envelope and returns it unchanged otherwise.
// The second result reports whether a new buffer was allocated.
func Unwrap(data []byte) ([]byte, bool, error) {
	if !IsEnvelope(data) {
		return data, false, nil
	}
	out, err := Decode(data)
	if err != nil {
		return nil, false, err
	}
	return out, Algorithm(data[4]) != None, nil
}
