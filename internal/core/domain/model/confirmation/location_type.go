package confirmation

import (
	"fmt"

	"handoff/internal/pkg/errs"
)

// LocationType classifies where a confirmed handoff happened.
type LocationType int

const (
	LocationUnresolved LocationType = iota
	ScheduledAddress
	AlternateLocation
)

func (t LocationType) String() string {
	switch t {
	case ScheduledAddress:
		return "SCHEDULED_ADDRESS"
	case AlternateLocation:
		return "ALTERNATE_LOCATION"
	default:
		return ""
	}
}

func ParseLocationType(s string) (LocationType, error) {
	switch s {
	case "":
		return LocationUnresolved, nil
	case "SCHEDULED_ADDRESS":
		return ScheduledAddress, nil
	case "ALTERNATE_LOCATION":
		return AlternateLocation, nil
	default:
		return LocationUnresolved, errs.NewValueIsInvalidErrorWithCause("locationType", fmt.Errorf("%q is unknown", s))
	}
}
