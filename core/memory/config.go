package memory

import "sync/atomic"

// Config holds runtime-tunable behavior for the memory core, in the same
// struct-with-package-default-and-atomic-override shape as the teacher's
// CacheConfig/DefaultOriginalConfig pattern.
type Config struct {
	// StrictIntrinsicNames additionally registers "llvm.minimum.f32" (the
	// corrected name) alongside the source-faithful "minimum.f32". It never
	// replaces the source-faithful registration.
	StrictIntrinsicNames bool

	// MemcpyFailsOnMissingBlock controls whether the Handler's memcpy treats a
	// missing source or destination block as a Failure (true, the spec
	// default) or as a silent no-op (false, for lenient callers).
	MemcpyFailsOnMissingBlock bool
}

// DefaultConfig is the spec-faithful configuration: the source's naming
// quirk is mirrored, not corrected, and memcpy is strict.
var DefaultConfig = Config{
	StrictIntrinsicNames:     false,
	MemcpyFailsOnMissingBlock: true,
}

var currentConfig atomic.Value

func init() {
	currentConfig.Store(DefaultConfig)
}

// CurrentConfig returns the process-wide active configuration.
func CurrentConfig() Config {
	return currentConfig.Load().(Config)
}

// SetConfig installs cfg as the process-wide active configuration.
func SetConfig(cfg Config) {
	currentConfig.Store(cfg)
}
