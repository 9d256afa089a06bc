// Package registry loads compiled dictionaries by name and keeps them open.
//
// A Registry reads blobs from a blobstore.Store, strips the optional
// compressed envelope, detects the backend from the leading bytes (binary
// magic or a protobuf field tag) and opens the dictionary. Opened
// dictionaries are cached in an LRU; concurrent requests for the same name
// share one load.
//
//	reg := registry.New(blobstore.NewLocalStore("/var/lib/lemmago"),
//	    registry.WithCacheSize(8),
//	    registry.WithResourceController(rc),
//	)
//	defer reg.Close()
//
//	d, err := reg.Get(ctx, "rus.lemd")
//	a := analyzer.New(d.Data, analyzer.WithAlphabet(alpha.Russian()))
//
// Dictionaries read in place keep referencing their blob, and callers may
// hold a Dictionary after the cache evicted it. Evicted blobs are therefore
// released only by Close.
package registry
