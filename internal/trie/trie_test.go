package trie

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u(s string) []uint16 { return utf16.Encode([]rune(s)) }

func build(t *testing.T, kv map[string]uint32) *Trie {
	t.Helper()
	var entries []Entry
	for k, v := range kv {
		entries = append(entries, Entry{Key: u(k), Value: v})
	}
	data, err := Build(entries)
	require.NoError(t, err)
	tr, err := Open(data)
	require.NoError(t, err)
	return tr
}

func TestFind(t *testing.T) {
	tr := build(t, map[string]uint32{"ень": 1, "ня": 2, "": 7, "ней": 3})
	assert.Equal(t, 4, tr.Len())

	v, ok := tr.Find(u("ня"))
	require.True(t, ok)
	assert.Equal(t, uint32(2), v)

	v, ok = tr.Find(nil)
	require.True(t, ok)
	assert.Equal(t, uint32(7), v)

	_, ok = tr.Find(u("н"))
	assert.False(t, ok)
	_, ok = tr.Find(u("нейх"))
	assert.False(t, ok)
}

func TestFindLongestPrefix(t *testing.T) {
	tr := build(t, map[string]uint32{"ь": 1, "ьне": 2, "ьнед_": 3})

	n, v, ok := tr.FindLongestPrefix(u("ьнед_"))
	require.True(t, ok)
	assert.Equal(t, 5, n)
	assert.Equal(t, uint32(3), v)

	n, v, ok = tr.FindLongestPrefix(u("ьнеш"))
	require.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, uint32(2), v)

	n, v, ok = tr.FindLongestPrefix(u("ьн"))
	require.True(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint32(1), v)

	n, _, ok = tr.FindLongestPrefix(u("абв"))
	assert.False(t, ok)
	assert.Equal(t, 0, n)
}

func TestFindLongestPrefixEmptyKey(t *testing.T) {
	tr := build(t, map[string]uint32{"": 9, "ab": 1})
	n, v, ok := tr.FindLongestPrefix(u("xyz"))
	require.True(t, ok)
	assert.Equal(t, 0, n)
	assert.Equal(t, uint32(9), v)
}

func TestWalkOrder(t *testing.T) {
	tr := build(t, map[string]uint32{"b": 2, "a": 1, "ab": 3})
	var keys []string
	tr.Walk(func(key []uint16, value uint32) bool {
		keys = append(keys, string(utf16.Decode(key)))
		return true
	})
	assert.Equal(t, []string{"a", "ab", "b"}, keys)

	count := 0
	tr.Walk(func([]uint16, uint32) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestEmptyTrie(t *testing.T) {
	data, err := Build(nil)
	require.NoError(t, err)
	tr, err := Open(data)
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Len())
	_, ok := tr.Find(nil)
	assert.False(t, ok)
}

func TestDuplicateKey(t *testing.T) {
	_, err := Build([]Entry{{Key: u("a"), Value: 1}, {Key: u("a"), Value: 2}})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestOpenCorrupt(t *testing.T) {
	good := MustBuild([]Entry{{Key: u("abc"), Value: 1}, {Key: u("abd"), Value: 2}})

	_, err := Open(good[:4])
	assert.ErrorIs(t, err, ErrCorrupt)

	badMagic := append([]byte(nil), good...)
	badMagic[0] ^= 0xFF
	_, err = Open(badMagic)
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Open(good[:len(good)-3])
	assert.ErrorIs(t, err, ErrCorrupt)

	badRoot := append([]byte(nil), good...)
	binary.LittleEndian.PutUint32(badRoot[4:], uint32(len(good)+10))
	_, err = Open(badRoot)
	assert.ErrorIs(t, err, ErrCorrupt)

	badFlags := append([]byte(nil), good...)
	badFlags[headerSize] = 0x80
	_, err = Open(badFlags)
	assert.ErrorIs(t, err, ErrCorrupt)

	// Root child pointing back at the root.
	loop := append([]byte(nil), good...)
	binary.LittleEndian.PutUint32(loop[headerSize+1+1+2:], headerSize)
	_, err = Open(loop)
	assert.ErrorIs(t, err, ErrCorrupt)
}
