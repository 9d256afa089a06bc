// lemmadict - dictionary tool for lemmago
//
// Usage:
//
//	lemmadict build [--format binary|proto] [--compress none|lz4|zstd] [source.json]
//	lemmadict inspect <name>
//	lemmadict analyze --dict rus=rus.lemd [--dict eng=eng.lemd] <word>...
//	lemmadict forms --dict rus=rus.lemd [--grammar gen,pl] <word>
//
// Dictionaries are read from and written to a local directory (--dir), an S3
// bucket (--bucket) or a MinIO server (--minio-endpoint). Remote
// dictionaries may be mirrored into a local cache directory (--cache-dir).
//
// If no source file is given to build, the source is read from stdin.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "lemmadict: %v\n", err)
		stop()
		os.Exit(1)
	}
}
