package session

import (
	"errors"
	"fmt"
)

// Defaults for the recognized construction options.
const (
	DefaultContextWindow     = 100000
	DefaultCleanupThreshold  = 0.90
	DefaultCleanupTarget     = 0.60
	DefaultMinMessagesToKeep = 5
)

// ErrInvalidConfig is wrapped by every construction-time rejection.
var ErrInvalidConfig = errors.New("session: invalid config")

// Config carries the recognized session options. The zero value is not
// usable; start from DefaultConfig and override.
type Config struct {
	// ContextWindow is the total token budget for the session.
	ContextWindow int

	// CleanupThreshold is the usage fraction at which compaction runs.
	CleanupThreshold float64

	// CleanupTarget is the usage fraction compaction brings the session
	// back to. Must be strictly below CleanupThreshold.
	CleanupTarget float64

	// MinMessagesToKeep is how many most-recent messages are exempt from
	// eviction regardless of role.
	MinMessagesToKeep int
}

// DefaultConfig returns the documented defaults: a 100k window, cleanup at
// 90% down to 60%, keeping the last 5 messages.
func DefaultConfig() Config {
	return Config{
		ContextWindow:     DefaultContextWindow,
		CleanupThreshold:  DefaultCleanupThreshold,
		CleanupTarget:     DefaultCleanupTarget,
		MinMessagesToKeep: DefaultMinMessagesToKeep,
	}
}

// Validate rejects invalid option combinations. A controller is never
// constructed from a config that fails validation.
func (c Config) Validate() error {
	if c.ContextWindow <= 0 {
		return fmt.Errorf("%w: context window must be positive, got %d", ErrInvalidConfig, c.ContextWindow)
	}
	if c.CleanupThreshold <= 0 || c.CleanupThreshold >= 1 {
		return fmt.Errorf("%w: cleanup threshold must be in (0,1), got %v", ErrInvalidConfig, c.CleanupThreshold)
	}
	if c.CleanupTarget <= 0 || c.CleanupTarget >= 1 {
		return fmt.Errorf("%w: cleanup target must be in (0,1), got %v", ErrInvalidConfig, c.CleanupTarget)
	}
	if c.CleanupTarget >= c.CleanupThreshold {
		return fmt.Errorf("%w: cleanup target %v must be below threshold %v", ErrInvalidConfig, c.CleanupTarget, c.CleanupThreshold)
	}
	if c.MinMessagesToKeep < 0 {
		return fmt.Errorf("%w: min messages to keep must be non-negative, got %d", ErrInvalidConfig, c.MinMessagesToKeep)
	}
	return nil
}
