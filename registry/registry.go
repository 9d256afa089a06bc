package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/lemmago/blobstore"
	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/internal/compress"
	"github.com/hupe1980/lemmago/resource"
)

// Dictionary is an opened dictionary.
type Dictionary struct {
	Name   string
	Format Format
	Data   dict.Data
	// Size is the length of the decoded dictionary in bytes.
	Size int64
	// Mapped reports whether the dictionary is read in place from its blob.
	Mapped   bool
	LoadTime time.Duration

	blob    blobstore.Blob // nil when the blob was released after decoding
	charged int64
}

// Registry loads and caches dictionaries from a blob store.
// It is safe for concurrent use.
type Registry struct {
	store  blobstore.Store
	cache  *lru.Cache[string, *Dictionary]
	group  singleflight.Group
	rc     *resource.Controller
	logger *slog.Logger
	verify bool

	mu     sync.RWMutex // guards closed against concurrent cache insertion
	closed bool

	retiredMu sync.Mutex
	retired   []blobstore.Blob
}

// New creates a registry reading from store.
func New(store blobstore.Store, optFns ...Option) *Registry {
	o := applyOptions(optFns)

	r := &Registry{
		store:  store,
		rc:     o.rc,
		logger: o.logger,
		verify: o.verifyChecksum,
	}
	// Only fails for non-positive sizes, which applyOptions rules out.
	r.cache, _ = lru.NewWithEvict(o.cacheSize, r.evicted)
	return r
}

func (r *Registry) evicted(name string, d *Dictionary) {
	r.rc.ReleaseMemory(d.charged)

	if d.blob != nil {
		r.retiredMu.Lock()
		r.retired = append(r.retired, d.blob)
		r.retiredMu.Unlock()
	}

	r.logger.Debug("dictionary evicted", "name", name, "bytes", d.Size)
}

func (r *Registry) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

// Get returns the named dictionary, loading it on first use.
func (r *Registry) Get(ctx context.Context, name string) (*Dictionary, error) {
	if r.isClosed() {
		return nil, ErrClosed
	}
	if d, ok := r.cache.Get(name); ok {
		return d, nil
	}

	v, err, _ := r.group.Do(name, func() (any, error) {
		if d, ok := r.cache.Get(name); ok {
			return d, nil
		}
		d, err := r.load(ctx, name)
		if err != nil {
			r.logger.ErrorContext(ctx, "dictionary load failed", "name", name, "error", err)
			return nil, err
		}

		r.mu.RLock()
		defer r.mu.RUnlock()
		if r.closed {
			r.release(d)
			return nil, ErrClosed
		}
		r.cache.Add(name, d)

		r.logger.InfoContext(ctx, "dictionary loaded",
			"name", name,
			"format", d.Format.String(),
			"bytes", d.Size,
			"mapped", d.Mapped,
			"duration", d.LoadTime,
		)
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dictionary), nil
}

// Preload loads the named dictionaries concurrently.
func (r *Registry) Preload(ctx context.Context, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, name := range names {
		g.Go(func() error {
			_, err := r.Get(ctx, name)
			return err
		})
	}
	return g.Wait()
}

// Names lists the dictionaries available in the store.
func (r *Registry) Names(ctx context.Context, prefix string) ([]string, error) {
	if r.isClosed() {
		return nil, ErrClosed
	}
	return r.store.List(ctx, prefix)
}

// Loaded returns the names of the cached dictionaries, oldest first.
func (r *Registry) Loaded() []string {
	return r.cache.Keys()
}

// Evict drops a dictionary from the cache. It reports whether it was cached.
func (r *Registry) Evict(name string) bool {
	return r.cache.Remove(name)
}

func (r *Registry) load(ctx context.Context, name string) (*Dictionary, error) {
	start := time.Now()

	if err := r.rc.AcquireLoad(ctx); err != nil {
		return nil, err
	}
	defer r.rc.ReleaseLoad()

	blob, err := r.store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("registry: open %s: %w", name, err)
	}

	d, err := r.decode(ctx, name, blob)
	if err != nil {
		_ = blob.Close()
		return nil, err
	}
	if d.blob == nil {
		_ = blob.Close()
	}
	d.LoadTime = time.Since(start)
	return d, nil
}

// readMetered copies a remote blob into memory, charging every read to the
// IO limit.
func (r *Registry) readMetered(ctx context.Context, blob blobstore.Blob) ([]byte, error) {
	size := blob.Size()
	if size < 0 {
		return nil, fmt.Errorf("invalid blob size %d", size)
	}
	raw := make([]byte, size)
	if _, err := io.ReadFull(resource.NewRateLimitedReader(ctx, blobstore.NewReader(ctx, blob), r.rc), raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *Registry) decode(ctx context.Context, name string, blob blobstore.Blob) (*Dictionary, error) {
	_, mappable := blob.(blobstore.Mappable)

	var (
		raw []byte
		err error
	)
	if mappable {
		raw, err = blobstore.ReadAll(ctx, blob)
	} else {
		raw, err = r.readMetered(ctx, blob)
	}
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", name, err)
	}

	payload, allocated, err := compress.Unwrap(raw)
	if err != nil {
		return nil, fmt.Errorf("registry: %s: %w", name, err)
	}

	d := &Dictionary{
		Name: name,
		Size: int64(len(payload)),
	}
	switch {
	case allocated:
		d.charged = int64(len(payload))
	case mappable:
		d.Mapped = true
		d.blob = blob
	default:
		d.charged = int64(len(raw))
	}

	if err := r.reserve(ctx, d.charged); err != nil {
		return nil, err
	}

	d.Data, d.Format, err = Open(name, payload, r.verify)
	if err != nil {
		r.rc.ReleaseMemory(d.charged)
		if errors.Is(err, ErrUnknownFormat) {
			return nil, fmt.Errorf("%w: %s", err, name)
		}
		return nil, fmt.Errorf("registry: %s: %w", name, err)
	}
	return d, nil
}

// reserve charges n bytes, evicting cached dictionaries while the memory
// limit is reached. With nothing left to evict it waits for other loads to
// release memory.
func (r *Registry) reserve(ctx context.Context, n int64) error {
	for !r.rc.TryAcquireMemory(n) {
		if _, _, ok := r.cache.RemoveOldest(); !ok {
			return r.rc.AcquireMemory(ctx, n)
		}
	}
	return nil
}

func (r *Registry) release(d *Dictionary) {
	r.rc.ReleaseMemory(d.charged)
	if d.blob != nil {
		_ = d.blob.Close()
	}
}

// Close evicts every dictionary and closes all blobs, including those of
// dictionaries evicted earlier. Dictionaries returned by Get must not be used
// afterwards.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.cache.Purge()
	r.mu.Unlock()

	r.retiredMu.Lock()
	retired := r.retired
	r.retired = nil
	r.retiredMu.Unlock()

	var errs []error
	for _, b := range retired {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
