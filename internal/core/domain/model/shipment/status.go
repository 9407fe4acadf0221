package shipment

import (
	"fmt"

	"handoff/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota

	OutForDelivery

	Delivered

	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Returned:       "RETURNED",
	}
}

func getValidStatusStrings() map[Status]string {
	return map[Status]string{
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Returned:       "RETURNED",
	}
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
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

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned
}

func (s Status) Deliver() (Status, error) {
	if s != OutForDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}

	return Delivered, nil
}

func (s Status) Return() (Status, error) {
	if s != OutForDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to return", s.String()),
		)
	}

	return Returned, nil
}
