package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint32(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntToUint32(0)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0), got)
	})

	t.Run("valid max int32", func(t *testing.T) {
		got, err := IntToUint32(math.MaxInt32)
		assert.NoError(t, err)
		assert.Equal(t, uint32(math.MaxInt32), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUint32(-1)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestIntToUint16(t *testing.T) {
	got, err := IntToUint16(math.MaxUint16)
	assert.NoError(t, err)
	assert.Equal(t, uint16(math.MaxUint16), got)

	_, err = IntToUint16(math.MaxUint16 + 1)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = IntToUint16(-1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestUint32ToUint16(t *testing.T) {
	got, err := Uint32ToUint16(42)
	assert.NoError(t, err)
	assert.Equal(t, uint16(42), got)

	_, err = Uint32ToUint16(math.MaxUint16 + 1)
	assert.ErrorIs(t, err, ErrOverflow)
}
