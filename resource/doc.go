// Package resource bounds the cost of loading dictionaries.
//
// A Controller governs three resources shared by every registry that uses it:
//
//   - Memory: heap bytes held by decompressed or downloaded dictionaries
//   - Loads: the number of dictionaries being fetched and opened at once
//   - IO: bytes per second read from blob stores
//
// Memory-mapped dictionaries are not charged; the kernel pages them in and
// out on its own.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   512 << 20,
//	    MaxConcurrentLoads: 4,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//
//	reg := registry.New(store, registry.WithResourceController(rc))
//
// All methods are safe for concurrent use, and all of them are no-ops on a
// nil *Controller.
package resource
