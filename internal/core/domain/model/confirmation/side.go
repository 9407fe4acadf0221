package confirmation

import (
	"fmt"
	"strings"

	"handoff/internal/pkg/errs"
)

// Side is one of the two parties of a handoff.
type Side int

const (
	UnknownSide Side = iota
	Agent
	Customer
)

func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(s) {
	case "AGENT":
		return Agent, nil
	case "CUSTOMER":
		return Customer, nil
	default:
		return UnknownSide, errs.NewValueIsInvalidErrorWithCause("side", fmt.Errorf("%q is not a handoff side", s))
	}
}

func (s Side) Validate() error {
	if s != Agent && s != Customer {
		return errs.NewValueIsInvalidErrorWithCause("side", fmt.Errorf("%d is not a handoff side", s))
	}
	return nil
}

func (s Side) Opposite() Side {
	if s == Agent {
		return Customer
	}
	return Agent
}

func (s Side) String() string {
	switch s {
	case Agent:
		return "AGENT"
	case Customer:
		return "CUSTOMER"
	default:
		return "UNKNOWN"
	}
}
