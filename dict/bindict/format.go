package bindict

import (
	"encoding/binary"
	"errors"
)

const (
	// Magic is "LD" read as a little-endian uint16.
	Magic         = 0x444C
	FormatVersion = 3

	// NumFields is the number of section slots in the header.
	NumFields = 31

	// HeaderSize is the encoded size of Header.
	HeaderSize = 2 + 2 + 4 + NumFields*4*2

	hasNextBit = 1 << 31
	idMask     = hasNextBit - 1
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported version")
	ErrChecksum       = errors.New("checksum mismatch")
)

// Field names a section of the file.
type Field int

const (
	FieldGrammar Field = iota
	FieldGrammarAddrs
	FieldFlexies
	FieldFlexiesAddrs
	FieldFlexTries
	FieldFlexTriesAddrs
	FieldEndsTrie
	FieldSchemesLemmaFlex
	FieldSchemesStemGram
	FieldSchemesBlockID
	FieldSchemesFreqID
	FieldBlocksFormFlex
	FieldBlocksFlexGram
	FieldBlocksFreqID
	FieldEndInfo
	FieldEndDiaMask
	FieldEndFreqID
	FieldAnasLists
	FieldFreqs
	FieldDefaultFlexGram
	numDataFields

	FieldFingerprint Field = 30
)

// fieldWidth is the element size of each data section in bytes.
var fieldWidth = [numDataFields]int{
	FieldGrammar:          1,
	FieldGrammarAddrs:     4,
	FieldFlexies:          1,
	FieldFlexiesAddrs:     4,
	FieldFlexTries:        1,
	FieldFlexTriesAddrs:   4,
	FieldEndsTrie:         1,
	FieldSchemesLemmaFlex: 4,
	FieldSchemesStemGram:  2,
	FieldSchemesBlockID:   4,
	FieldSchemesFreqID:    2,
	FieldBlocksFormFlex:   4,
	FieldBlocksFlexGram:   2,
	FieldBlocksFreqID:     2,
	FieldEndInfo:          4,
	FieldEndDiaMask:       2,
	FieldEndFreqID:        2,
	FieldAnasLists:        4,
	FieldFreqs:            4,
	FieldDefaultFlexGram:  2,
}

var fieldNames = [NumFields]string{
	FieldGrammar:          "grammar",
	FieldGrammarAddrs:     "grammar addrs",
	FieldFlexies:          "flexies",
	FieldFlexiesAddrs:     "flexies addrs",
	FieldFlexTries:        "flex tries",
	FieldFlexTriesAddrs:   "flex tries addrs",
	FieldEndsTrie:         "ends trie",
	FieldSchemesLemmaFlex: "schemes lemma flex",
	FieldSchemesStemGram:  "schemes stem gram",
	FieldSchemesBlockID:   "schemes block id",
	FieldSchemesFreqID:    "schemes freq id",
	FieldBlocksFormFlex:   "blocks form flex",
	FieldBlocksFlexGram:   "blocks flex gram",
	FieldBlocksFreqID:     "blocks freq id",
	FieldEndInfo:          "end info",
	FieldEndDiaMask:       "end dia mask",
	FieldEndFreqID:        "end freq id",
	FieldAnasLists:        "anas lists",
	FieldFreqs:            "freqs",
	FieldDefaultFlexGram:  "default flex gram",
	FieldFingerprint:      "fingerprint",
}

func (f Field) String() string {
	if f >= 0 && int(f) < NumFields && fieldNames[f] != "" {
		return fieldNames[f]
	}
	return "header"
}

// Header describes the layout of a binary dictionary file.
type Header struct {
	Magic    uint16
	Version  uint16
	Checksum uint32 // CRC32C of everything after the header, 0 if unset
	Offset   [NumFields]uint32
	Length   [NumFields]uint32
}

// Encode serializes the header.
func (h *Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint16(buf[0:], h.Magic)
	binary.LittleEndian.PutUint16(buf[2:], h.Version)
	binary.LittleEndian.PutUint32(buf[4:], h.Checksum)
	for i := 0; i < NumFields; i++ {
		binary.LittleEndian.PutUint32(buf[8+4*i:], h.Offset[i])
		binary.LittleEndian.PutUint32(buf[8+4*NumFields+4*i:], h.Length[i])
	}
	return buf
}

// DecodeHeader parses and checks magic and version.
func DecodeHeader(buf []byte) (*Header, error) {
	if len(buf) < HeaderSize {
		return nil, errors.New("buffer too small for header")
	}
	h := &Header{}
	h.Magic = binary.LittleEndian.Uint16(buf[0:])
	if h.Magic != Magic {
		return nil, ErrInvalidMagic
	}
	h.Version = binary.LittleEndian.Uint16(buf[2:])
	if h.Version != FormatVersion {
		return nil, ErrInvalidVersion
	}
	h.Checksum = binary.LittleEndian.Uint32(buf[4:])
	for i := 0; i < NumFields; i++ {
		h.Offset[i] = binary.LittleEndian.Uint32(buf[8+4*i:])
		h.Length[i] = binary.LittleEndian.Uint32(buf[8+4*NumFields+4*i:])
	}
	return h, nil
}

// IsBinary reports whether data starts with the binary dictionary magic.
func IsBinary(data []byte) bool {
	return len(data) >= 2 && binary.LittleEndian.Uint16(data) == Magic
}
