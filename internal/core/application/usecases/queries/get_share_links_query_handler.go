package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/recipient"
	"handoff/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetShareLinksQueryHandler struct {
	db *gorm.DB
}

func NewGetShareLinksQueryHandler(db *gorm.DB) GetShareLinksQueryHandler {
	return GetShareLinksQueryHandler{db: db}
}

// Handle lists the links of a leg. Only the leg's customer and admins of its tenant may see them.
func (h GetShareLinksQueryHandler) Handle(
	ctx context.Context, query GetShareLinksQuery,
) ([]GetShareLinksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.authorize(ctx, query); err != nil {
		return nil, err
	}

	links := make([]GetShareLinksQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			ar.id,
			ar.name,
			ar.phone,
			ar.email,
			ar.token,
			ar.share_link,
			ar.share_method,
			ar.status,
			ar.expires_at,
			ar.created_at,
			ar.confirmed_at,
			ar.revoked_at
		FROM alternate_recipients ar
		JOIN shipment_legs sl ON sl.id = ar.shipment_leg_id
		WHERE ar.shipment_leg_id = ? AND sl.tenant_id = ?
		ORDER BY ar.created_at, ar.id
	`, query.shipmentLegID.Bytes(), query.caller.TenantID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var link GetShareLinksQueryResponse
		var id uuid.UUID
		var status int
		var confirmedAt, revokedAt sql.NullTime

		err = rows.Scan(
			&id,
			&link.RecipientName,
			&link.Phone,
			&link.Email,
			&link.Token,
			&link.ShareLink,
			&link.ShareMethod,
			&status,
			&link.ExpiresAt,
			&link.CreatedAt,
			&confirmedAt,
			&revokedAt,
		)
		if err != nil {
			return nil, err
		}

		recipientID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		link.RecipientID = recipientID

		st := recipient.Status(status)
		if (st == recipient.Pending || st == recipient.Active) && query.at.After(link.ExpiresAt) {
			st = recipient.Expired
		}
		link.Status = st.String()

		if confirmedAt.Valid {
			link.ConfirmedAt = &confirmedAt.Time
		}
		if revokedAt.Valid {
			link.RevokedAt = &revokedAt.Time
		}
		links = append(links, link)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return links, nil
}

func (h GetShareLinksQueryHandler) authorize(ctx context.Context, query GetShareLinksQuery) error {
	var tenantID, customerID uuid.UUID
	row := h.db.WithContext(ctx).Raw(
		`SELECT tenant_id, customer_id FROM shipment_legs WHERE id = ?`, query.shipmentLegID.Bytes(),
	).Row()
	if err := row.Scan(&tenantID, &customerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewObjectNotFoundError("shipmentLegID", query.shipmentLegID.String())
		}
		return err
	}

	if tenantID != query.caller.TenantID.Bytes() {
		return fmt.Errorf("%w: shipment leg %s belongs to another tenant", errs.ErrAccessDenied, query.shipmentLegID)
	}
	if !query.caller.IsAdmin() && customerID != query.caller.UserID.Bytes() {
		return fmt.Errorf("%w: only the customer may list share links of shipment leg %s",
			errs.ErrAccessDenied, query.shipmentLegID)
	}
	return nil
}
