package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndInfoPacking(t *testing.T) {
	e := EndInfo{
		SchemeID:   0xBEEF,
		StemLen:    MaxStemLen,
		HasPrefix:  true,
		IsFinal:    true,
		Rest:       MaxRest,
		UseAlways:  true,
		OldFlexLen: MaxOldFlexLen,
	}
	require.NoError(t, e.Validate())
	v := e.Pack()
	assert.Equal(t, uint32(0xBEEF), v&0xFFFF)
	assert.Equal(t, uint32(MaxStemLen), v>>16&0x3F)
	assert.NotZero(t, v&(1<<22))
	assert.NotZero(t, v&(1<<23))
	assert.Equal(t, uint32(MaxRest), v>>24&0x7)
	assert.NotZero(t, v&(1<<28))
	assert.Equal(t, uint32(MaxOldFlexLen), v>>29)
	assert.Equal(t, e, UnpackEndInfo(v))
	assert.True(t, ValidPacked(v))

	assert.False(t, ValidPacked(v|1<<27))
	assert.Error(t, EndInfo{Rest: MaxRest + 1}.Validate())
	assert.Error(t, EndInfo{StemLen: MaxStemLen + 1}.Validate())
}

func TestText(t *testing.T) {
	u := UTF16("день")
	assert.Equal(t, "ьнед_", String(Reverse(u)))
	enc := EncodeText(u)
	assert.True(t, ValidText(enc))
	assert.Equal(t, u, DecodeText(enc))
	assert.False(t, ValidText(enc[:len(enc)-1]))
	assert.Equal(t, 3, IndexDelimiter(UTF16("ень$по")))
	assert.Equal(t, -1, IndexDelimiter(u))
}
