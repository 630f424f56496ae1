package clock

import (
	"time"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/contract"
)

// RealClock implements IClock using the system clock in server local time.
type RealClock struct{}

func New() contract.IClock {
	return &RealClock{}
}

// Now returns the current local time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant. Tests use it to pin dates.
type FixedClock struct {
	CurrentTime time.Time
}

var _ contract.IClock = (*FixedClock)(nil)

func NewFixed(t time.Time) *FixedClock {
	return &FixedClock{CurrentTime: t}
}

func (c *FixedClock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}
