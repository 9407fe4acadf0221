package ports

import (
	"context"
	"time"

	"handoff/internal/core/domain/model/recipient"
)

type AlternateRecipientRepository interface {
	Add(ctx context.Context, aggregate *recipient.AlternateRecipient) error

	Update(ctx context.Context, aggregate *recipient.AlternateRecipient) error

	GetByToken(ctx context.Context, token recipient.Token) (*recipient.AlternateRecipient, error)

	GetByTokenForUpdate(ctx context.Context, token recipient.Token) (*recipient.AlternateRecipient, error)

	// ListExpirableForUpdate returns open links past their expiry, skipping rows locked elsewhere.
	ListExpirableForUpdate(ctx context.Context, now time.Time, limit int) ([]*recipient.AlternateRecipient, error)
}
