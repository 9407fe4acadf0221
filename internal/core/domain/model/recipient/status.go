package recipient

import (
	"fmt"

	"handoff/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Pending
	Active
	Confirmed
	Expired
	Revoked
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Active:    "ACTIVE",
		Confirmed: "CONFIRMED",
		Expired:   "EXPIRED",
		Revoked:   "REVOKED",
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

func (s Status) isOpen() bool {
	return s == Pending || s == Active
}

// ShareMethod is how the link reaches the recipient. Delivery of the message is external.
type ShareMethod string

const (
	ShareBySMS      ShareMethod = "SMS"
	ShareByEmail    ShareMethod = "EMAIL"
	ShareByWhatsApp ShareMethod = "WHATSAPP"
	ShareByLink     ShareMethod = "LINK"
)

func ParseShareMethod(s string) (ShareMethod, error) {
	switch m := ShareMethod(s); m {
	case ShareBySMS, ShareByEmail, ShareByWhatsApp, ShareByLink:
		return m, nil
	case "":
		return ShareByLink, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("shareMethod", fmt.Errorf("%q is not supported", s))
	}
}
