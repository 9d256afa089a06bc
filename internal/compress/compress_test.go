package compress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []byte {
	return []byte(strings.Repeat("день дня дню днем дне дни дней дням днями днях ", 64))
}

func TestRoundTrip(t *testing.T) {
	data := sample()
	for _, algo := range []Algorithm{None, LZ4, Zstd} {
		t.Run(algo.String(), func(t *testing.T) {
			env, err := Encode(data, algo)
			require.NoError(t, err)
			assert.True(t, IsEnvelope(env))
			if algo != None {
				assert.Less(t, len(env), len(data))
			}

			got, err := Decode(env)
			require.NoError(t, err)
			assert.Equal(t, data, got)

			un, allocated, err := Unwrap(env)
			require.NoError(t, err)
			assert.Equal(t, data, un)
			assert.Equal(t, algo != None, allocated)
		})
	}
}

func TestEncode_Incompressible(t *testing.T) {
	data := []byte{0x01, 0x02}
	env, err := Encode(data, Zstd)
	require.NoError(t, err)
	assert.Equal(t, byte(None), env[4])

	got, err := Decode(env)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestEncode_Empty(t *testing.T) {
	env, err := Encode(nil, LZ4)
	require.NoError(t, err)
	got, err := Decode(env)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnwrap_PassThrough(t *testing.T) {
	data := []byte("LEMD plain binary dictionary")
	got, allocated, err := Unwrap(data)
	require.NoError(t, err)
	assert.False(t, allocated)
	assert.Same(t, &data[0], &got[0])
}

func TestDecode_Corrupt(t *testing.T) {
	env, err := Encode(sample(), Zstd)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"NoMagic", func(b []byte) []byte { return bytes.Clone(b[4:]) }},
		{"Algorithm", func(b []byte) []byte { b[4] = 9; return b }},
		{"Size", func(b []byte) []byte { b[8]++; return b }},
		{"Checksum", func(b []byte) []byte { b[12] ^= 0xff; return b }},
		{"Payload", func(b []byte) []byte { return b[:len(b)-3] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.mutate(bytes.Clone(env)))
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, algo := range []Algorithm{None, LZ4, Zstd} {
		got, err := ParseAlgorithm(algo.String())
		require.NoError(t, err)
		assert.Equal(t, algo, got)
	}
	_, err := ParseAlgorithm("brotli")
	assert.Error(t, err)
	assert.Equal(t, "Algorithm(7)", Algorithm(7).String())
}
