package minio

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/lemmago/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves the handful of path-style S3 calls the store makes.
type fakeS3 struct {
	mu      sync.Mutex
	bucket  string
	objects map[string][]byte
}

type listResult struct {
	XMLName     xml.Name `xml:"ListBucketResult"`
	Name        string
	Prefix      string
	KeyCount    int
	MaxKeys     int
	IsTruncated bool
	Contents    []listEntry
}

type listEntry struct {
	Key          string
	Size         int64
	LastModified string
	ETag         string
}

var modTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := strings.TrimPrefix(r.URL.Path, "/")
	bucket, key, _ := strings.Cut(p, "/")
	if bucket != f.bucket {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch {
	case key == "" && r.Method == http.MethodGet:
		f.list(w, r.URL.Query())
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodHead || r.Method == http.MethodGet:
		data, ok := f.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("ETag", `"etag"`)
		http.ServeContent(w, r, key, modTime, bytes.NewReader(data))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeS3) list(w http.ResponseWriter, q url.Values) {
	prefix := q.Get("prefix")
	res := listResult{Name: f.bucket, Prefix: prefix, MaxKeys: 1000}
	for key, data := range f.objects {
		if strings.HasPrefix(key, prefix) {
			res.Contents = append(res.Contents, listEntry{
				Key:          key,
				Size:         int64(len(data)),
				LastModified: modTime.Format("2006-01-02T15:04:05.000Z"),
				ETag:         `"etag"`,
			})
		}
	}
	slices.SortFunc(res.Contents, func(a, b listEntry) int { return strings.Compare(a.Key, b.Key) })
	res.KeyCount = len(res.Contents)

	w.Header().Set("Content-Type", "application/xml")
	_ = xml.NewEncoder(w).Encode(res)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	srv := httptest.NewServer(&fakeS3{bucket: "lemmago", objects: map[string][]byte{}})
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	client, err := minio.New(u.Host, &minio.Options{
		Creds:        credentials.NewStaticV4("", "", ""),
		Secure:       false,
		Region:       "us-east-1",
		BucketLookup: minio.BucketLookupPath,
	})
	require.NoError(t, err)
	return NewStore(client, "lemmago", "dicts")
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Open(ctx, "rus.lemd")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	data := []byte("LEMD russian dictionary")
	require.NoError(t, store.Put(ctx, "rus.lemd", data))
	require.NoError(t, store.Put(ctx, "ukr.lemd", []byte("ukr")))

	b, err := store.Open(ctx, "rus.lemd")
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, int64(len(data)), b.Size())

	buf := make([]byte, 7)
	n, err := b.ReadAt(ctx, buf, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "russian", string(buf))

	n, err = b.ReadAt(ctx, make([]byte, 64), 13)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, len(data)-13, n)

	all, err := blobstore.ReadAll(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, data, all)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"rus.lemd", "ukr.lemd"}, names)

	require.NoError(t, store.Delete(ctx, "ukr.lemd"))
	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"rus.lemd"}, names)
}
