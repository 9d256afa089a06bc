package blobstore

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// MirrorStore serves blobs from a local directory, copying them from a
// remote store the first time they are opened. Dictionaries are immutable,
// so a mirrored copy never goes stale until it is replaced through Put.
type MirrorStore struct {
	remote Store
	local  *LocalStore
	group  singleflight.Group
}

var _ Store = (*MirrorStore)(nil)

// NewMirrorStore mirrors remote into local.
func NewMirrorStore(remote Store, local *LocalStore) *MirrorStore {
	return &MirrorStore{remote: remote, local: local}
}

// Open maps the local copy, fetching it from the remote store when missing.
func (s *MirrorStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.local.Open(ctx, name)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err := s.fetch(ctx, name); err != nil {
		return nil, err
	}
	return s.local.Open(ctx, name)
}

func (s *MirrorStore) fetch(ctx context.Context, name string) error {
	_, err, _ := s.group.Do(name, func() (any, error) {
		b, err := s.remote.Open(ctx, name)
		if err != nil {
			return nil, err
		}
		defer b.Close()

		data, err := ReadAll(ctx, b)
		if err != nil {
			return nil, err
		}
		return nil, s.local.Put(ctx, name, data)
	})
	return err
}

// Prefetch mirrors the named blobs concurrently.
func (s *MirrorStore) Prefetch(ctx context.Context, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, name := range names {
		g.Go(func() error {
			return s.fetch(ctx, name)
		})
	}
	return g.Wait()
}

// Put writes to the remote store and refreshes the local copy.
func (s *MirrorStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.remote.Put(ctx, name, data); err != nil {
		return err
	}
	return s.local.Put(ctx, name, data)
}

// Delete removes the blob from both stores.
func (s *MirrorStore) Delete(ctx context.Context, name string) error {
	if err := s.remote.Delete(ctx, name); err != nil {
		return err
	}
	return s.local.Delete(ctx, name)
}

// List reports the remote store's view.
func (s *MirrorStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.remote.List(ctx, prefix)
}
