package commands

import (
	"time"

	"handoff/internal/pkg/errs"
)

func requiredTime(name string, t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func requiredString(name, s string) error {
	if s == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
