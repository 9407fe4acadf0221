package confirmation

import (
	"fmt"

	"handoff/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota

	Pending

	AgentConfirmed

	CustomerConfirmed

	AgentUnavailable

	CustomerUnavailable

	BothConfirmed

	Conflict

	BothUnavailable

	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "UNKNOWN",
		Pending:             "PENDING",
		AgentConfirmed:      "AGENT_CONFIRMED",
		CustomerConfirmed:   "CUSTOMER_CONFIRMED",
		AgentUnavailable:    "AGENT_UNAVAILABLE",
		CustomerUnavailable: "CUSTOMER_UNAVAILABLE",
		BothConfirmed:       "BOTH_CONFIRMED",
		Conflict:            "CONFLICT",
		BothUnavailable:     "BOTH_UNAVAILABLE",
		Returned:            "RETURNED",
	}
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsImmutable reports the terminal states that no operation may change.
func (s Status) IsImmutable() bool {
	return s == BothConfirmed || s == Returned
}

// AcceptsAttestations is false once the record is settled, in conflict, or
// waiting to be reopened.
func (s Status) AcceptsAttestations() bool {
	switch s {
	case Pending, AgentConfirmed, CustomerConfirmed, AgentUnavailable, CustomerUnavailable:
		return true
	default:
		return false
	}
}

func confirmedStatus(side Side) Status {
	if side == Agent {
		return AgentConfirmed
	}
	return CustomerConfirmed
}

func unavailableStatus(side Side) Status {
	if side == Agent {
		return AgentUnavailable
	}
	return CustomerUnavailable
}
