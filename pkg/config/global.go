package config

import "sync/atomic"

var published atomic.Pointer[Config]

// Publish makes cfg the process-wide configuration returned by Published.
// The CLI publishes the configuration it loaded so that the shared engine
// in package formula uses the same limits and whitelist. Passing nil
// withdraws it.
func Publish(cfg *Config) {
	published.Store(cfg)
}

// Published returns the configuration passed to Publish, or nil.
func Published() *Config {
	return published.Load()
}
