package ports

import (
	"context"

	"handoff/internal/core/domain/model/ageverification"
	"handoff/internal/core/domain/model/kernel"
)

type AgeVerificationRepository interface {
	GetByConfirmation(ctx context.Context, confirmationID kernel.UUID) (*ageverification.Verification, error)

	// Save inserts or replaces the verification of its confirmation record.
	Save(ctx context.Context, aggregate *ageverification.Verification) error
}
