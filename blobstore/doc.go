// Package blobstore provides storage abstraction for compiled dictionaries.
//
// A Store hands out read-only Blob handles by name. Implementations must be
// safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, blobs are memory-mapped
//   - MemoryStore: in-process map, for tests and embedded dictionaries
//   - MirrorStore: copies blobs from a remote store into a LocalStore on first use
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: any S3-compatible endpoint through minio-go
//
// # Custom Implementations
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs that can expose their contents without copying should also implement
// Mappable; dictionaries opened from them are then read in place.
package blobstore
