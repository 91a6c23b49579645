package actionlog

import "errors"

// Config holds the tunable limits for the action-logging pipeline. It
// follows the same Config / DefaultConfig / Validate pattern as
// pkg/cron_worker.
type Config struct {
	// MaxContextValueLength is the maximum length, in bytes, of a single
	// context value. Longer values are rejected (§3).
	// Default: 1000
	MaxContextValueLength int

	// TraceSoftLimit is the soft character budget for trace rendering.
	// Default: 30KB
	TraceSoftLimit int

	// TraceHardLimit is the hard character budget for trace rendering.
	// Default: 3MB
	TraceHardLimit int

	// ForwardQueueCapacity is the bounded in-memory queue capacity between
	// the action-owning thread and the background forwarder. Default: 1024
	ForwardQueueCapacity int
}

// DefaultConfig returns a Config with the limits named in §6.
func DefaultConfig() Config {
	return Config{
		MaxContextValueLength: 1000,
		TraceSoftLimit:        30 * 1024,
		TraceHardLimit:        3 * 1024 * 1024,
		ForwardQueueCapacity:  1024,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	var errs []error

	if c.MaxContextValueLength <= 0 {
		errs = append(errs, errors.New("MaxContextValueLength must be greater than 0"))
	}
	if c.TraceSoftLimit <= 0 {
		errs = append(errs, errors.New("TraceSoftLimit must be greater than 0"))
	}
	if c.TraceHardLimit < c.TraceSoftLimit {
		errs = append(errs, errors.New("TraceHardLimit must be greater than or equal to TraceSoftLimit"))
	}
	if c.ForwardQueueCapacity <= 0 {
		errs = append(errs, errors.New("ForwardQueueCapacity must be greater than 0"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
