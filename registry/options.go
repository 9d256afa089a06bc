package registry

import (
	"log/slog"

	"github.com/hupe1980/lemmago/resource"
)

// DefaultCacheSize is the number of dictionaries kept open by default.
const DefaultCacheSize = 16

type options struct {
	cacheSize      int
	rc             *resource.Controller
	logger         *slog.Logger
	verifyChecksum bool
}

// Option configures a Registry.
type Option func(*options)

// WithCacheSize sets how many dictionaries stay open. Values below 1 are
// raised to 1.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = max(n, 1)
	}
}

// WithResourceController charges loads, IO and heap memory to rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithLogger sets the logger for loads and evictions.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithVerifyChecksum enables header checksum verification of binary
// dictionaries.
func WithVerifyChecksum(verify bool) Option {
	return func(o *options) {
		o.verifyChecksum = verify
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		cacheSize: DefaultCacheSize,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
