package dict

import "fmt"

// Limits of the packed EndInfo fields.
const (
	MaxSchemeID   = 1<<16 - 1
	MaxStemLen    = 1<<6 - 1
	MaxRest       = 4
	MaxOldFlexLen = 1<<3 - 1
)

// EndInfo holds the per-pattern split description shared by both backends.
//
// Packed into a little-endian uint32:
//
//	bits  0-15  SchemeID
//	bits 16-21  StemLen
//	bit  22     HasPrefix
//	bit  23     IsFinal
//	bits 24-26  Rest
//	bit  27     reserved
//	bit  28     UseAlways
//	bits 29-31  OldFlexLen
type EndInfo struct {
	SchemeID   uint32
	StemLen    int
	HasPrefix  bool
	IsFinal    bool
	Rest       int
	UseAlways  bool
	OldFlexLen int
}

func bit(b bool, shift uint) uint32 {
	if b {
		return 1 << shift
	}
	return 0
}

// Pack encodes the fields. Call Validate first; out-of-range values are
// truncated.
func (e EndInfo) Pack() uint32 {
	return e.SchemeID&0xFFFF |
		uint32(e.StemLen&0x3F)<<16 |
		bit(e.HasPrefix, 22) |
		bit(e.IsFinal, 23) |
		uint32(e.Rest&0x7)<<24 |
		bit(e.UseAlways, 28) |
		uint32(e.OldFlexLen&0x7)<<29
}

// UnpackEndInfo decodes a packed word.
func UnpackEndInfo(v uint32) EndInfo {
	return EndInfo{
		SchemeID:   v & 0xFFFF,
		StemLen:    int(v>>16) & 0x3F,
		HasPrefix:  v&(1<<22) != 0,
		IsFinal:    v&(1<<23) != 0,
		Rest:       int(v>>24) & 0x7,
		UseAlways:  v&(1<<28) != 0,
		OldFlexLen: int(v>>29) & 0x7,
	}
}

// Validate reports fields that do not fit their bit ranges.
func (e EndInfo) Validate() error {
	switch {
	case e.SchemeID > MaxSchemeID:
		return fmt.Errorf("scheme id %d exceeds %d", e.SchemeID, MaxSchemeID)
	case e.StemLen < 0 || e.StemLen > MaxStemLen:
		return fmt.Errorf("stem length %d exceeds %d", e.StemLen, MaxStemLen)
	case e.Rest < 0 || e.Rest > MaxRest:
		return fmt.Errorf("rest %d exceeds %d", e.Rest, MaxRest)
	case e.OldFlexLen < 0 || e.OldFlexLen > MaxOldFlexLen:
		return fmt.Errorf("old flexion length %d exceeds %d", e.OldFlexLen, MaxOldFlexLen)
	}
	return nil
}

// ValidPacked reports whether a packed word has a legal Rest and a clear
// reserved bit.
func ValidPacked(v uint32) bool {
	return (v>>24)&0x7 <= MaxRest && v&(1<<27) == 0
}
