package engine

import "time"

// ClockConfig provides the wall-clock zone of the panel
type ClockConfig interface {
	GetLocation() *time.Location
}

// RealClock implements domain.Clock in the panel's time zone.
// Every window rule is evaluated on its wall clock.
type RealClock struct {
	loc *time.Location
}

// NewRealClock creates a clock for the configured zone
func NewRealClock(cfg ClockConfig) *RealClock {
	loc := cfg.GetLocation()
	if loc == nil {
		loc = time.Local
	}
	return &RealClock{loc: loc}
}

// Now returns the current time in the panel's zone
func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}
