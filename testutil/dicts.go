package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lemmago/alpha"
	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/dict/bindict"
	"github.com/hupe1980/lemmago/dict/protodict"
	"github.com/hupe1980/lemmago/dictbuild"
)

// Compile compiles spec and fails the test on error.
func Compile(t testing.TB, spec dictbuild.Spec, opts ...dictbuild.Option) *dict.Source {
	t.Helper()
	src, err := dictbuild.Compile(spec, opts...)
	require.NoError(t, err)
	return src
}

// RussianSource compiles the Russian fixture with diacritics stripped from
// stems.
func RussianSource(t testing.TB) *dict.Source {
	return Compile(t, RussianSpec(), dictbuild.WithDiacritics(alpha.Russian().Diacritics()))
}

// UkrainianSource compiles the Ukrainian fixture.
func UkrainianSource(t testing.TB) *dict.Source {
	return Compile(t, UkrainianSpec())
}

// EnglishSource compiles the English fixture.
func EnglishSource(t testing.TB) *dict.Source {
	return Compile(t, EnglishSpec())
}

// BinaryBlob encodes src in the binary format.
func BinaryBlob(t testing.TB, src *dict.Source) []byte {
	t.Helper()
	data, err := bindict.Encode(src)
	require.NoError(t, err)
	return data
}

// ProtoBlob encodes src as a protobuf message.
func ProtoBlob(t testing.TB, src *dict.Source) []byte {
	t.Helper()
	data, err := protodict.Encode(src)
	require.NoError(t, err)
	return data
}

// Binary opens src through the binary backend.
func Binary(t testing.TB, src *dict.Source) *bindict.Dict {
	t.Helper()
	d, err := bindict.Open(BinaryBlob(t, src), bindict.WithVerifyChecksum(true))
	require.NoError(t, err)
	return d
}

// Proto opens src through the protobuf backend.
func Proto(t testing.TB, src *dict.Source) *protodict.Dict {
	t.Helper()
	d, err := protodict.Open(ProtoBlob(t, src))
	require.NoError(t, err)
	return d
}

// Backends returns src opened through every backend, keyed by name.
func Backends(t testing.TB, src *dict.Source) map[string]dict.Data {
	t.Helper()
	return map[string]dict.Data{
		"binary": Binary(t, src),
		"proto":  Proto(t, src),
	}
}
