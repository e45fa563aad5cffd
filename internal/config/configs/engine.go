package configs

import "time"

// Engine holds the pauses between campaign run phases. They simulate
// asynchronous external work and may be shortened freely; phase order and
// progress monotonicity do not depend on them.
type Engine struct {
	// FindDelay follows the discovery checkpoint.
	FindDelay time.Duration `env:"FIND_DELAY" envDefault:"2s"`
	// CommitDelay follows the target list commit.
	CommitDelay time.Duration `env:"COMMIT_DELAY" envDefault:"1s"`
	// SendInterval precedes each per-target send.
	SendInterval time.Duration `env:"SEND_INTERVAL" envDefault:"300ms"`
	// ResolveDelay precedes outcome resolution.
	ResolveDelay time.Duration `env:"RESOLVE_DELAY" envDefault:"1s"`
}
