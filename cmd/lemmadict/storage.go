package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/pflag"

	"github.com/hupe1980/lemmago/blobstore"
	miniostore "github.com/hupe1980/lemmago/blobstore/minio"
	s3store "github.com/hupe1980/lemmago/blobstore/s3"
	"github.com/hupe1980/lemmago/registry"
	"github.com/hupe1980/lemmago/resource"
)

type storageFlags struct {
	dir      string
	cacheDir string

	bucket    string
	prefix    string
	region    string
	endpoint  string
	pathStyle bool

	minioEndpoint string
	minioSecure   bool

	memoryLimit int64
	ioLimit     int64
}

func (s *storageFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&s.dir, "dir", ".", "local dictionary directory")
	fs.StringVar(&s.cacheDir, "cache-dir", "", "mirror remote dictionaries into this directory")
	fs.StringVar(&s.bucket, "bucket", "", "S3 bucket holding the dictionaries")
	fs.StringVar(&s.prefix, "prefix", "", "key prefix inside the bucket")
	fs.StringVar(&s.region, "region", "", "S3 region (default from the AWS configuration)")
	fs.StringVar(&s.endpoint, "endpoint", "", "custom S3 endpoint")
	fs.BoolVar(&s.pathStyle, "path-style", false, "use path-style S3 addressing")
	fs.StringVar(&s.minioEndpoint, "minio-endpoint", "", "MinIO server (credentials from MINIO_ACCESS_KEY and MINIO_SECRET_KEY)")
	fs.BoolVar(&s.minioSecure, "minio-secure", true, "use TLS for MinIO")
	fs.Int64Var(&s.memoryLimit, "memory-limit", 0, "heap bytes loaded dictionaries may use (0 = unlimited)")
	fs.Int64Var(&s.ioLimit, "io-limit", 0, "bytes per second read from the store (0 = unlimited)")
}

// open returns the configured store. Remote stores are wrapped in a local
// mirror when a cache directory is set.
func (s *storageFlags) open(ctx context.Context) (blobstore.Store, error) {
	var remote blobstore.Store

	switch {
	case s.minioEndpoint != "":
		if s.bucket == "" {
			return nil, errors.New("--minio-endpoint requires --bucket")
		}
		client, err := minio.New(s.minioEndpoint, &minio.Options{
			Creds:  credentials.NewEnvMinio(),
			Secure: s.minioSecure,
			Region: s.region,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		remote = miniostore.NewStore(client, s.bucket, s.prefix)
	case s.bucket != "":
		opts := []s3store.Option{s3store.WithPrefix(s.prefix)}
		if s.region != "" {
			opts = append(opts, s3store.WithRegion(s.region))
		}
		if s.endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(s.endpoint, s.pathStyle))
		}
		st, err := s3store.New(ctx, s.bucket, opts...)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		remote = st
	default:
		return blobstore.NewLocalStore(s.dir), nil
	}

	if s.cacheDir != "" {
		return blobstore.NewMirrorStore(remote, blobstore.NewLocalStore(s.cacheDir)), nil
	}
	return remote, nil
}

func (g *globalFlags) registry(ctx context.Context) (*registry.Registry, error) {
	store, err := g.storage.open(ctx)
	if err != nil {
		return nil, err
	}
	logger, err := g.logger()
	if err != nil {
		return nil, err
	}
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   g.storage.memoryLimit,
		IOLimitBytesPerSec: g.storage.ioLimit,
	})
	return registry.New(store,
		registry.WithLogger(logger.Logger),
		registry.WithResourceController(rc),
		registry.WithVerifyChecksum(true),
	), nil
}
