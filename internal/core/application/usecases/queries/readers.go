package queries

import "handoff/internal/core/ports"

// Reader exposes the repositories a query may read from.
type Reader interface {
	ShipmentLegRepository() ports.ShipmentLegRepository
	ConfirmationRepository() ports.ConfirmationRepository
	AlternateRecipientRepository() ports.AlternateRecipientRepository
}

type ReaderFactory interface {
	Create() Reader
}
