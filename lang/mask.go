package lang

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Mask is an immutable set of languages. The zero Mask is empty.
type Mask struct {
	bm *roaring.Bitmap
}

// NewMask returns a mask holding the given languages.
func NewMask(langs ...Language) Mask {
	bm := roaring.New()
	for _, l := range langs {
		bm.Add(uint32(l))
	}
	return Mask{bm: bm}
}

// Contains reports whether l is in the mask.
func (m Mask) Contains(l Language) bool {
	return m.bm != nil && m.bm.Contains(uint32(l))
}

// Len returns the number of languages.
func (m Mask) Len() int {
	if m.bm == nil {
		return 0
	}
	return int(m.bm.GetCardinality())
}

// IsEmpty reports whether the mask holds no language.
func (m Mask) IsEmpty() bool { return m.bm == nil || m.bm.IsEmpty() }

// Languages returns the languages in ascending id order.
func (m Mask) Languages() []Language {
	if m.bm == nil {
		return nil
	}
	ids := m.bm.ToArray()
	out := make([]Language, len(ids))
	for i, id := range ids {
		out[i] = Language(id)
	}
	return out
}

// With returns a copy of the mask with l added.
func (m Mask) With(l Language) Mask {
	bm := m.clone()
	bm.Add(uint32(l))
	return Mask{bm: bm}
}

// Union returns the languages present in either mask.
func (m Mask) Union(other Mask) Mask {
	return Mask{bm: roaring.Or(m.clone(), other.clone())}
}

// Intersect returns the languages present in both masks.
func (m Mask) Intersect(other Mask) Mask {
	return Mask{bm: roaring.And(m.clone(), other.clone())}
}

func (m Mask) clone() *roaring.Bitmap {
	if m.bm == nil {
		return roaring.New()
	}
	return m.bm.Clone()
}

// String renders the mask as a comma separated list of ISO names.
func (m Mask) String() string {
	langs := m.Languages()
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = l.String()
	}
	return strings.Join(names, ",")
}

// ParseMask parses a comma separated list of ISO names.
func ParseMask(text string) (Mask, error) {
	m := NewMask()
	for _, part := range strings.Split(text, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		l, err := Parse(part)
		if err != nil {
			return Mask{}, err
		}
		m.bm.Add(uint32(l))
	}
	return m, nil
}
