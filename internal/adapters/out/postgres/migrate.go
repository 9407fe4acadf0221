package postgres

import (
	"handoff/internal/adapters/out/postgres/ageverificationrepo"
	"handoff/internal/adapters/out/postgres/confirmationrepo"
	"handoff/internal/adapters/out/postgres/recipientrepo"
	"handoff/internal/adapters/out/postgres/shipmentrepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns, in dependency order.
func Models() []any {
	return []any{
		&shipmentrepo.ShipmentLegDTO{},
		&confirmationrepo.ConfirmationDTO{},
		&recipientrepo.AlternateRecipientDTO{},
		&ageverificationrepo.AgeVerificationDTO{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
