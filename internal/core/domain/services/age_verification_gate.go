package services

import (
	"context"
	"errors"

	"handoff/internal/core/domain/model/ageverification"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/errs"
)

type VerificationFinder interface {
	GetByConfirmation(ctx context.Context, confirmationID kernel.UUID) (*ageverification.Verification, error)
}

// AgeVerificationGate decides whether a regulated handoff may settle.
type AgeVerificationGate struct {
	finder VerificationFinder
}

func NewAgeVerificationGate(finder VerificationFinder) AgeVerificationGate {
	return AgeVerificationGate{finder: finder}
}

// IsSatisfied is true only when the record's verification is VERIFIED with the age confirmed.
func (g AgeVerificationGate) IsSatisfied(ctx context.Context, confirmationID kernel.UUID) (bool, error) {
	v, err := g.finder.GetByConfirmation(ctx, confirmationID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return v.Satisfies(), nil
}
