package booking

import (
	"fmt"
	"sync"
	"time"
)

// CodePrefix starts every booking code.
const CodePrefix = "SWB-"

// CodeGenerator issues booking codes.
type CodeGenerator interface {
	Next() string
}

// ClockCodes derives codes from the last eight digits of a millisecond
// clock. Codes are unique within one generator, never across processes.
type ClockCodes struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewClockCodes creates a generator reading now. A nil now uses time.Now.
func NewClockCodes(now func() time.Time) *ClockCodes {
	if now == nil {
		now = time.Now
	}
	return &ClockCodes{now: now}
}

// Next returns a fresh code. Readings that do not move past the previous one
// are bumped by a millisecond.
func (g *ClockCodes) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return fmt.Sprintf("%s%08d", CodePrefix, ms%100_000_000)
}
