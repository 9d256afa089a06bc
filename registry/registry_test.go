package registry_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lemmago/alpha"
	"github.com/hupe1980/lemmago/analyzer"
	"github.com/hupe1980/lemmago/blobstore"
	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/internal/compress"
	"github.com/hupe1980/lemmago/lemma"
	"github.com/hupe1980/lemmago/registry"
	"github.com/hupe1980/lemmago/resource"
	"github.com/hupe1980/lemmago/testutil"
)

type countingStore struct {
	blobstore.Store
	opens atomic.Int64
}

func (s *countingStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	s.opens.Add(1)
	return s.Store.Open(ctx, name)
}

// remoteStore hides Mappable so blobs are copied like object store reads.
type remoteStore struct {
	blobstore.Store
}

type remoteBlob struct {
	b blobstore.Blob
}

func (b remoteBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	return b.b.ReadAt(ctx, p, off)
}

func (b remoteBlob) Size() int64  { return b.b.Size() }
func (b remoteBlob) Close() error { return b.b.Close() }

func (s remoteStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	b, err := s.Store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return remoteBlob{b: b}, nil
}

func put(t *testing.T, store blobstore.Store, name string, data []byte) {
	t.Helper()
	require.NoError(t, store.Put(context.Background(), name, data))
}

func lemmaTexts(d dict.Data, word string) []string {
	res := analyzer.New(d, analyzer.WithAlphabet(alpha.Russian())).Analyze(word, analyzer.Options{Accept: lemma.AcceptDictionary})
	out := make([]string, len(res))
	for i, l := range res {
		out[i] = l.Text
	}
	return out
}

func TestGet_Formats(t *testing.T) {
	src := testutil.RussianSource(t)
	bin := testutil.BinaryBlob(t, src)
	zst, err := compress.Encode(bin, compress.Zstd)
	require.NoError(t, err)
	lz, err := compress.Encode(testutil.ProtoBlob(t, src), compress.LZ4)
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	put(t, store, "rus.lemd", bin)
	put(t, store, "rus.pb", testutil.ProtoBlob(t, src))
	put(t, store, "rus.lemd.zst", zst)
	put(t, store, "rus.pb.lz4", lz)

	reg := registry.New(store)
	defer reg.Close()

	tests := []struct {
		name   string
		format registry.Format
	}{
		{"rus.lemd", registry.FormatBinary},
		{"rus.pb", registry.FormatProto},
		{"rus.lemd.zst", registry.FormatBinary},
		{"rus.pb.lz4", registry.FormatProto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := reg.Get(context.Background(), tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name)
			assert.Equal(t, tt.format, d.Format)
			assert.False(t, d.Mapped)
			assert.Equal(t, src.Fingerprint, d.Data.Fingerprint())
			assert.Equal(t, []string{"день"}, lemmaTexts(d.Data, "дням"))
		})
	}
	assert.Len(t, reg.Loaded(), 4)
}

func TestGet_LocalStoreIsMapped(t *testing.T) {
	src := testutil.UkrainianSource(t)
	bin := testutil.BinaryBlob(t, src)

	store := blobstore.NewLocalStore(t.TempDir())
	put(t, store, "ukr.lemd", bin)

	rc := resource.NewController(resource.Config{})
	reg := registry.New(store, registry.WithResourceController(rc), registry.WithVerifyChecksum(true))

	d, err := reg.Get(context.Background(), "ukr.lemd")
	require.NoError(t, err)
	assert.True(t, d.Mapped)
	assert.Equal(t, int64(len(bin)), d.Size)
	assert.Zero(t, rc.MemoryUsage())
	assert.Equal(t, src.Fingerprint, d.Data.Fingerprint())

	require.NoError(t, reg.Close())
	require.NoError(t, reg.Close())
}

func TestGet_RemoteReadsAreMetered(t *testing.T) {
	bin := testutil.BinaryBlob(t, testutil.RussianSource(t))
	store := blobstore.NewMemoryStore()
	put(t, store, "rus.lemd", bin)

	t.Run("copies within the limit", func(t *testing.T) {
		rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 30})
		reg := registry.New(remoteStore{store}, registry.WithResourceController(rc))
		defer reg.Close()

		d, err := reg.Get(context.Background(), "rus.lemd")
		require.NoError(t, err)
		assert.False(t, d.Mapped)
		assert.Equal(t, int64(len(bin)), rc.MemoryUsage())
		assert.Equal(t, []string{"день"}, lemmaTexts(d.Data, "дням"))
	})

	t.Run("gives up at the deadline", func(t *testing.T) {
		rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 16})
		reg := registry.New(remoteStore{store}, registry.WithResourceController(rc))
		defer reg.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := reg.Get(ctx, "rus.lemd")
		assert.Error(t, err)
	})
}

func TestGet_Errors(t *testing.T) {
	store := blobstore.NewMemoryStore()
	put(t, store, "notes.txt", []byte("plain text"))
	corrupt := testutil.BinaryBlob(t, testutil.RussianSource(t))
	put(t, store, "short.lemd", corrupt[:len(corrupt)/2])
	env, err := compress.Encode(corrupt, compress.Zstd)
	require.NoError(t, err)
	env[12] ^= 0xff
	put(t, store, "bad.zst", env)

	reg := registry.New(store)
	defer reg.Close()
	ctx := context.Background()

	_, err = reg.Get(ctx, "missing.lemd")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	_, err = reg.Get(ctx, "notes.txt")
	assert.ErrorIs(t, err, registry.ErrUnknownFormat)

	_, err = reg.Get(ctx, "short.lemd")
	assert.ErrorIs(t, err, dict.ErrFormat)

	_, err = reg.Get(ctx, "bad.zst")
	assert.ErrorIs(t, err, compress.ErrCorrupt)

	assert.Empty(t, reg.Loaded())
}

func TestGet_CachesAndDeduplicates(t *testing.T) {
	mem := blobstore.NewMemoryStore()
	put(t, mem, "rus.lemd", testutil.BinaryBlob(t, testutil.RussianSource(t)))
	store := &countingStore{Store: mem}

	reg := registry.New(store)
	defer reg.Close()

	var wg sync.WaitGroup
	results := make([]*registry.Dictionary, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := reg.Get(context.Background(), "rus.lemd")
			assert.NoError(t, err)
			results[i] = d
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), store.opens.Load())
	for _, d := range results {
		assert.Same(t, results[0], d)
	}
}

func TestGet_EvictsLeastRecentlyUsed(t *testing.T) {
	store := blobstore.NewMemoryStore()
	rus := testutil.BinaryBlob(t, testutil.RussianSource(t))
	ukr := testutil.BinaryBlob(t, testutil.UkrainianSource(t))
	put(t, store, "rus.lemd", rus)
	put(t, store, "ukr.lemd", ukr)

	rc := resource.NewController(resource.Config{})
	reg := registry.New(store, registry.WithCacheSize(1), registry.WithResourceController(rc))
	defer reg.Close()
	ctx := context.Background()

	_, err := reg.Get(ctx, "rus.lemd")
	require.NoError(t, err)
	assert.Equal(t, int64(len(rus)), rc.MemoryUsage())

	_, err = reg.Get(ctx, "ukr.lemd")
	require.NoError(t, err)
	assert.Equal(t, []string{"ukr.lemd"}, reg.Loaded())
	assert.Equal(t, int64(len(ukr)), rc.MemoryUsage())

	assert.True(t, reg.Evict("ukr.lemd"))
	assert.False(t, reg.Evict("ukr.lemd"))
	assert.Zero(t, rc.MemoryUsage())
}

func TestGet_MemoryLimitEvicts(t *testing.T) {
	store := blobstore.NewMemoryStore()
	rus := testutil.BinaryBlob(t, testutil.RussianSource(t))
	ukr := testutil.BinaryBlob(t, testutil.UkrainianSource(t))
	put(t, store, "rus.lemd", rus)
	put(t, store, "ukr.lemd", ukr)

	limit := int64(max(len(rus), len(ukr)))
	rc := resource.NewController(resource.Config{MemoryLimitBytes: limit})
	reg := registry.New(store, registry.WithResourceController(rc))
	defer reg.Close()
	ctx := context.Background()

	_, err := reg.Get(ctx, "rus.lemd")
	require.NoError(t, err)
	_, err = reg.Get(ctx, "ukr.lemd")
	require.NoError(t, err)

	assert.Equal(t, []string{"ukr.lemd"}, reg.Loaded())
	assert.Equal(t, int64(len(ukr)), rc.MemoryUsage())
}

func TestPreloadAndNames(t *testing.T) {
	store := blobstore.NewMemoryStore()
	put(t, store, "dicts/rus.lemd", testutil.BinaryBlob(t, testutil.RussianSource(t)))
	put(t, store, "dicts/ukr.pb", testutil.ProtoBlob(t, testutil.UkrainianSource(t)))
	put(t, store, "dicts/eng.lemd", testutil.BinaryBlob(t, testutil.EnglishSource(t)))

	reg := registry.New(store)
	defer reg.Close()
	ctx := context.Background()

	names, err := reg.Names(ctx, "dicts/")
	require.NoError(t, err)
	require.Len(t, names, 3)

	require.NoError(t, reg.Preload(ctx, names...))
	assert.ElementsMatch(t, names, reg.Loaded())

	err = reg.Preload(ctx, "dicts/rus.lemd", "dicts/missing.lemd")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestClose(t *testing.T) {
	store := blobstore.NewMemoryStore()
	put(t, store, "rus.lemd", testutil.BinaryBlob(t, testutil.RussianSource(t)))

	reg := registry.New(store)
	_, err := reg.Get(context.Background(), "rus.lemd")
	require.NoError(t, err)

	require.NoError(t, reg.Close())
	assert.Empty(t, reg.Loaded())

	_, err = reg.Get(context.Background(), "rus.lemd")
	assert.ErrorIs(t, err, registry.ErrClosed)
	_, err = reg.Names(context.Background(), "")
	assert.ErrorIs(t, err, registry.ErrClosed)
}

func TestDetect(t *testing.T) {
	src := testutil.EnglishSource(t)

	f, err := registry.Detect(testutil.BinaryBlob(t, src))
	require.NoError(t, err)
	assert.Equal(t, registry.FormatBinary, f)

	f, err = registry.Detect(testutil.ProtoBlob(t, src))
	require.NoError(t, err)
	assert.Equal(t, registry.FormatProto, f)

	_, err = registry.Detect(nil)
	assert.ErrorIs(t, err, registry.ErrUnknownFormat)

	assert.Equal(t, "binary", registry.FormatBinary.String())
	assert.Equal(t, "proto", registry.FormatProto.String())
	assert.Equal(t, "Format(9)", registry.Format(9).String())
}
