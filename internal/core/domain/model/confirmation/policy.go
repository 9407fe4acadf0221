package confirmation

import (
	"errors"
	"time"

	"handoff/internal/pkg/errs"
)

const (
	DefaultConfirmationWindow = 5 * time.Minute
	DefaultMaxReschedules     = 3
	DefaultRescheduleDelay    = 24 * time.Hour
)

// Policy holds the timing and retry limits of the protocol.
type Policy struct {
	ConfirmationWindow time.Duration
	MaxReschedules     int
	RescheduleDelay    time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		ConfirmationWindow: DefaultConfirmationWindow,
		MaxReschedules:     DefaultMaxReschedules,
		RescheduleDelay:    DefaultRescheduleDelay,
	}
}

// Validate rejects non-positive durations and a negative reschedule bound.
// Zero reschedules is allowed: mutual unavailability then returns at once.
func (p Policy) Validate() error {
	var windowErr, retriesErr, delayErr error
	if p.ConfirmationWindow <= 0 {
		windowErr = errs.NewValueIsOutOfRangeError("confirmationWindow", p.ConfirmationWindow, time.Nanosecond, "unbounded")
	}
	if p.MaxReschedules < 0 {
		retriesErr = errs.NewValueIsOutOfRangeError("maxReschedules", p.MaxReschedules, 0, "unbounded")
	}
	if p.RescheduleDelay <= 0 {
		delayErr = errs.NewValueIsOutOfRangeError("rescheduleDelay", p.RescheduleDelay, time.Nanosecond, "unbounded")
	}
	return errors.Join(windowErr, retriesErr, delayErr)
}
