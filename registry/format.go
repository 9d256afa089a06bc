package registry

import (
	"fmt"

	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/dict/bindict"
	"github.com/hupe1980/lemmago/dict/protodict"
)

// Format is the backend a dictionary was opened with.
type Format int

const (
	// FormatBinary is the flat little-endian table format.
	FormatBinary Format = iota + 1
	// FormatProto is the protobuf TLemmerDict message.
	FormatProto
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatProto:
		return "proto"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Detect reports the backend of an unwrapped dictionary blob.
func Detect(data []byte) (Format, error) {
	switch {
	case bindict.IsBinary(data):
		return FormatBinary, nil
	case protodict.IsProto(data):
		return FormatProto, nil
	}
	return 0, ErrUnknownFormat
}

// Open detects the backend of data and opens it.
func Open(name string, data []byte, verifyChecksum bool) (dict.Data, Format, error) {
	format, err := Detect(data)
	if err != nil {
		return nil, 0, err
	}
	switch format {
	case FormatBinary:
		d, err := bindict.Open(data, bindict.WithVerifyChecksum(verifyChecksum))
		if err != nil {
			return nil, 0, err
		}
		return d, format, nil
	default:
		d, err := protodict.Open(data, protodict.WithName(name))
		if err != nil {
			return nil, 0, err
		}
		return d, format, nil
	}
}
