package commands

import (
	"context"

	"handoff/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentLegRepoFactory interface {
		ShipmentLegRepository() ports.ShipmentLegRepository
	}

	ConfirmationRepoFactory interface {
		ConfirmationRepository() ports.ConfirmationRepository
	}

	AlternateRecipientRepoFactory interface {
		AlternateRecipientRepository() ports.AlternateRecipientRepository
	}

	AgeVerificationRepoFactory interface {
		AgeVerificationRepository() ports.AgeVerificationRepository
	}

	ShipmentUoW interface {
		TxManager
		ShipmentLegRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	RecipientUoW interface {
		TxManager
		ShipmentLegRepoFactory
		AlternateRecipientRepoFactory
	}

	RecipientUoWFactory interface {
		Create() RecipientUoW
	}

	UoW interface {
		TxManager
		ShipmentLegRepoFactory
		ConfirmationRepoFactory
		AlternateRecipientRepoFactory
		AgeVerificationRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
