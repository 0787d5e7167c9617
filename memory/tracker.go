package memory

import (
	"errors"
	"fmt"
	"math"
)

// Band classifies current usage for presentation. It carries no behavioural
// effect: cleanup is governed solely by the configured threshold, which may
// be set independently from the band boundaries.
type Band int

const (
	BandNormal Band = iota
	BandWarning
	BandCritical
)

// Band boundaries are fixed display conventions, not cleanup thresholds.
const (
	bandWarningAt  = 0.70
	bandCriticalAt = 0.90
)

func (b Band) String() string {
	switch b {
	case BandWarning:
		return "warning"
	case BandCritical:
		return "critical"
	default:
		return "normal"
	}
}

// ErrTokenUnderflow reports a Remove that would drive the running total
// negative. It indicates a store/tracker desync in the caller and must never
// occur under correct controller usage; it is not a user-facing condition.
var ErrTokenUnderflow = errors.New("memory: token accounting underflow")

// Tracker maintains a running token count against a fixed context window and
// decides when compaction must run and what the post-compaction target is.
type Tracker struct {
	window    int
	threshold float64
	target    float64
	current   int
}

// NewTracker returns a tracker for the given window and cleanup fractions.
// Validation of the combination happens at session construction; the tracker
// itself assumes window > 0 and 0 < target < threshold < 1.
func NewTracker(window int, threshold, target float64) *Tracker {
	return &Tracker{window: window, threshold: threshold, target: target}
}

// Add increments the running total. Overflow past 100% of the window is
// allowed and expected to be observed, not prevented.
func (t *Tracker) Add(n int) {
	t.current += n
}

// Remove decrements the running total. A removal that would go negative
// leaves the total unchanged and returns ErrTokenUnderflow so the caller bug
// surfaces loudly instead of being clamped away.
func (t *Tracker) Remove(n int) error {
	if n > t.current {
		return fmt.Errorf("%w: removing %d with %d tracked", ErrTokenUnderflow, n, t.current)
	}
	t.current -= n
	return nil
}

// Reset zeroes the running total.
func (t *Tracker) Reset() {
	t.current = 0
}

// CurrentTokens returns the tracked total.
func (t *Tracker) CurrentTokens() int {
	return t.current
}

// ContextWindow returns the configured window size in tokens.
func (t *Tracker) ContextWindow() int {
	return t.window
}

// UsageFraction returns current/window; may exceed 1.0.
func (t *Tracker) UsageFraction() float64 {
	return float64(t.current) / float64(t.window)
}

// NeedsCleanup reports whether usage has reached the cleanup threshold.
func (t *Tracker) NeedsCleanup() bool {
	return t.UsageFraction() >= t.threshold
}

// TargetTokens returns the token total compaction aims for.
func (t *Tracker) TargetTokens() int {
	return int(math.Floor(t.target * float64(t.window)))
}

// Band returns the display band for current usage.
func (t *Tracker) Band() Band {
	f := t.UsageFraction()
	switch {
	case f >= bandCriticalAt:
		return BandCritical
	case f >= bandWarningAt:
		return BandWarning
	default:
		return BandNormal
	}
}
