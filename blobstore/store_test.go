package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Open(ctx, "rus.lemd")
	require.ErrorIs(t, err, ErrNotFound)

	data := []byte("LEMD dictionary payload")
	require.NoError(t, store.Put(ctx, "rus.lemd", data))
	require.NoError(t, store.Put(ctx, "dicts/ukr.lemd", []byte("ukr")))

	b, err := store.Open(ctx, "rus.lemd")
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, int64(len(data)), b.Size())

	buf := make([]byte, 4)
	n, err := b.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "LEMD", string(buf))

	n, err = b.ReadAt(ctx, make([]byte, 32), 5)
	assert.Equal(t, len(data)-5, n)
	assert.ErrorIs(t, err, io.EOF)

	all, err := ReadAll(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, data, all)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"dicts/ukr.lemd", "rus.lemd"}, names)

	names, err = store.List(ctx, "dicts/")
	require.NoError(t, err)
	assert.Equal(t, []string{"dicts/ukr.lemd"}, names)

	require.NoError(t, store.Delete(ctx, "dicts/ukr.lemd"))
	require.NoError(t, store.Delete(ctx, "dicts/ukr.lemd"))
	_, err = store.Open(ctx, "dicts/ukr.lemd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_NotMappable(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "rus.lemd", []byte("russian")))

	b, err := store.Open(ctx, "rus.lemd")
	require.NoError(t, err)
	defer b.Close()

	_, ok := b.(Mappable)
	assert.False(t, ok)

	all, err := ReadAll(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "russian", string(all))
}

func TestLocalStore(t *testing.T) {
	exerciseStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_Mappable(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "eng.lemd"), []byte("english"), 0o600))

	store := NewLocalStore(root)
	b, err := store.Open(ctx, "eng.lemd")
	require.NoError(t, err)

	m, ok := b.(Mappable)
	require.True(t, ok)
	data, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "english", string(data))

	require.NoError(t, b.Close())
	_, err = m.Bytes()
	assert.Error(t, err)
}

func TestLocalStore_PutLeavesNoTemporaries(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewLocalStore(root)

	require.NoError(t, store.Put(ctx, "rus.lemd", []byte("v1")))
	require.NoError(t, store.Put(ctx, "rus.lemd", []byte("v2")))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rus.lemd", entries[0].Name())

	got, err := os.ReadFile(filepath.Join(root, "rus.lemd"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "absent"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewLocalStore(t.TempDir())
	_, err := store.Open(ctx, "rus.lemd")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Put(ctx, "rus.lemd", nil), context.Canceled)
}

type countingStore struct {
	*MemoryStore
	opens int
}

func (s *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	s.opens++
	return s.MemoryStore.Open(ctx, name)
}

func TestMirrorStore(t *testing.T) {
	ctx := context.Background()
	remote := &countingStore{MemoryStore: NewMemoryStore()}
	require.NoError(t, remote.Put(ctx, "rus.lemd", []byte("russian")))
	require.NoError(t, remote.Put(ctx, "ukr.lemd", []byte("ukrainian")))

	local := NewLocalStore(t.TempDir())
	store := NewMirrorStore(remote, local)

	for range 3 {
		b, err := store.Open(ctx, "rus.lemd")
		require.NoError(t, err)
		_, ok := b.(Mappable)
		assert.True(t, ok)
		require.NoError(t, b.Close())
	}
	assert.Equal(t, 1, remote.opens)

	require.NoError(t, store.Prefetch(ctx, "ukr.lemd"))
	names, err := local.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"rus.lemd", "ukr.lemd"}, names)

	_, err = store.Open(ctx, "eng.lemd")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(ctx, "rus.lemd"))
	_, err = local.Open(ctx, "rus.lemd")
	assert.ErrorIs(t, err, ErrNotFound)

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"ukr.lemd"}, names)
}

func TestNewReader(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "eng.lemd", []byte("english dictionary")))

	b, err := store.Open(ctx, "eng.lemd")
	require.NoError(t, err)
	defer b.Close()

	got, err := io.ReadAll(NewReader(ctx, b))
	require.NoError(t, err)
	assert.Equal(t, "english dictionary", string(got))
}
