// Package s3 provides an S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("dicts/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	reg := registry.New(store)
//
// # Features
//
//   - Range reads through GetObject
//   - Multipart uploads with CRC32C checksums for large dictionaries
//   - Automatic pagination for listing
//   - Configurable prefix for sharing a bucket
package s3
