package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/core/application/usecases/queries"
	"handoff/internal/core/domain/model/ageverification"
	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/recipient"
	"handoff/internal/core/ports"
	"handoff/internal/metrics"
	"handoff/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

type (
	attestationHandler interface {
		Handle(ctx context.Context, cmd commands.SubmitAttestationCommand) (commands.AttestationResult, error)
	}
	unavailabilityHandler interface {
		Handle(ctx context.Context, cmd commands.MarkUnavailableCommand) (commands.AttestationResult, error)
	}
	alternateConfirmationHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmAsAlternateCommand) (commands.AttestationResult, error)
	}
	shareLinksHandler interface {
		Handle(ctx context.Context, cmd commands.ShareLinksCommand) ([]commands.IssuedLink, error)
	}
	revokeShareLinkHandler interface {
		Handle(ctx context.Context, cmd commands.RevokeShareLinkCommand) error
	}
	ageVerificationHandler interface {
		Handle(ctx context.Context, cmd commands.RecordAgeVerificationCommand) error
	}
	carrierWebhookHandler interface {
		Handle(ctx context.Context, cmd commands.CarrierWebhookCommand) (commands.CarrierStatusUpdate, error)
	}
	confirmationStatusHandler interface {
		Handle(ctx context.Context, query queries.GetConfirmationStatusQuery) (queries.ConfirmationStatusResponse, error)
	}
	shareLinkResolver interface {
		Handle(ctx context.Context, query queries.ResolveShareLinkQuery) (queries.ResolveShareLinkQueryResponse, error)
	}
	shareLinksLister interface {
		Handle(ctx context.Context, query queries.GetShareLinksQuery) ([]queries.GetShareLinksQueryResponse, error)
	}
	trackingHandler interface {
		Handle(ctx context.Context, query queries.GetTrackingQuery) (queries.GetTrackingQueryResponse, error)
	}
)

// Handlers are the use cases the HTTP surface exposes.
type Handlers struct {
	SubmitAttestation     attestationHandler
	MarkUnavailable       unavailabilityHandler
	ConfirmAsAlternate    alternateConfirmationHandler
	ShareLinks            shareLinksHandler
	RevokeShareLink       revokeShareLinkHandler
	RecordAgeVerification ageVerificationHandler
	CarrierWebhook        carrierWebhookHandler

	GetConfirmationStatus confirmationStatusHandler
	ResolveShareLink      shareLinkResolver
	GetShareLinks         shareLinksLister
	GetTracking           trackingHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h      Handlers
	logger *slog.Logger
	now    func() time.Time
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http"),
		now:    time.Now,
	}
}

// SubmitAttestation handles POST /api/v1/shipments/{shipmentId}/confirmations/{agent|customer}.
func (s *Server) SubmitAttestation(side confirmation.Side) echo.HandlerFunc {
	return func(c echo.Context) error {
		legID, err := bindShipmentID(c)
		if err != nil {
			return s.fail(c, err)
		}
		var req LocationRequest
		if err = c.Bind(&req); err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
		}
		location, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
		if err != nil {
			return s.fail(c, err)
		}

		caller := identityFrom(c)
		cmd, err := commands.NewSubmitAttestationCommand(
			legID, caller.TenantID, caller.UserID, side, location, req.LocationAccuracy, s.now(),
		)
		if err != nil {
			return s.fail(c, err)
		}

		result, err := s.h.SubmitAttestation.Handle(c.Request().Context(), cmd)
		if err != nil {
			return s.fail(c, err)
		}
		metrics.AttestationsTotal.WithLabelValues(side.String(), result.Outcome.String()).Inc()
		return c.JSON(http.StatusOK, toAttestationResult(result))
	}
}

// MarkUnavailable handles POST /api/v1/shipments/{shipmentId}/unavailability/{agent|customer}.
func (s *Server) MarkUnavailable(side confirmation.Side) echo.HandlerFunc {
	return func(c echo.Context) error {
		legID, err := bindShipmentID(c)
		if err != nil {
			return s.fail(c, err)
		}
		var req UnavailabilityRequest
		if err = c.Bind(&req); err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
		}
		if req.Latitude != nil || req.Longitude != nil {
			if req.Latitude == nil || req.Longitude == nil {
				return s.fail(c, errs.NewValueIsRequiredError("latitude and longitude"))
			}
			if _, err = kernel.NewGeoPoint(*req.Latitude, *req.Longitude); err != nil {
				return s.fail(c, err)
			}
		}

		caller := identityFrom(c)
		cmd, err := commands.NewMarkUnavailableCommand(legID, caller.TenantID, caller.UserID, side, req.Reason, s.now())
		if err != nil {
			return s.fail(c, err)
		}

		result, err := s.h.MarkUnavailable.Handle(c.Request().Context(), cmd)
		if err != nil {
			return s.fail(c, err)
		}
		metrics.AttestationsTotal.WithLabelValues(side.String()+"_UNAVAILABLE", result.Outcome.String()).Inc()
		return c.JSON(http.StatusOK, toAttestationResult(result))
	}
}

// GetConfirmationStatus handles GET /api/v1/shipments/{shipmentId}/confirmation.
func (s *Server) GetConfirmationStatus(c echo.Context) error {
	legID, err := bindShipmentID(c)
	if err != nil {
		return s.fail(c, err)
	}
	caller := identityFrom(c)

	var rawSide *string
	if err = runtime.BindQueryParameter("form", true, false, "side", c.QueryParams(), &rawSide); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("side", err))
	}
	side := confirmation.Customer
	if caller.Has(ports.CapabilityAgent) {
		side = confirmation.Agent
	}
	if rawSide != nil {
		if side, err = confirmation.ParseSide(*rawSide); err != nil {
			return s.fail(c, err)
		}
	}

	query, err := queries.NewGetConfirmationStatusQuery(legID, caller, side, s.now())
	if err != nil {
		return s.fail(c, err)
	}
	status, err := s.h.GetConfirmationStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toConfirmationStatus(status))
}

// IssueShareLinks handles POST /api/v1/shipments/{shipmentId}/share-links.
func (s *Server) IssueShareLinks(c echo.Context) error {
	legID, err := bindShipmentID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req ShareLinksRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	method, err := recipient.ParseShareMethod(req.ShareMethod)
	if err != nil {
		return s.fail(c, err)
	}
	contacts := make([]recipient.Contact, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		userID, err := parseOptionalID("recipients.user_id", r.UserID)
		if err != nil {
			return s.fail(c, err)
		}
		contacts = append(contacts, recipient.Contact{Name: r.Name, Phone: r.Phone, Email: r.Email, UserID: userID})
	}

	cmd, err := commands.NewShareLinksCommand(
		legID, identityFrom(c), contacts, method, time.Duration(req.ExpiryHours)*time.Hour, s.now(),
	)
	if err != nil {
		return s.fail(c, err)
	}
	issued, err := s.h.ShareLinks.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]IssuedLink, len(issued))
	for i, l := range issued {
		response[i] = IssuedLink{
			RecipientID: l.RecipientID.String(),
			Name:        l.Name,
			Token:       l.Token.String(),
			ShareLink:   l.ShareLink,
			ExpiresAt:   l.ExpiresAt,
		}
	}
	return c.JSON(http.StatusCreated, response)
}

// ListShareLinks handles GET /api/v1/shipments/{shipmentId}/share-links.
func (s *Server) ListShareLinks(c echo.Context) error {
	legID, err := bindShipmentID(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetShareLinksQuery(legID, identityFrom(c), s.now())
	if err != nil {
		return s.fail(c, err)
	}
	links, err := s.h.GetShareLinks.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]ShareLink, len(links))
	for i, l := range links {
		response[i] = ShareLink{
			RecipientID: l.RecipientID.String(),
			Name:        l.RecipientName,
			Phone:       l.Phone,
			Email:       l.Email,
			Token:       l.Token,
			ShareLink:   l.ShareLink,
			ShareMethod: l.ShareMethod,
			Status:      l.Status,
			ExpiresAt:   l.ExpiresAt,
			CreatedAt:   l.CreatedAt,
			ConfirmedAt: l.ConfirmedAt,
			RevokedAt:   l.RevokedAt,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// RevokeShareLink handles DELETE /api/v1/shipments/{shipmentId}/share-links/{token}.
func (s *Server) RevokeShareLink(c echo.Context) error {
	legID, err := bindShipmentID(c)
	if err != nil {
		return s.fail(c, err)
	}
	token, err := bindToken(c)
	if err != nil {
		return s.fail(c, err)
	}
	var rawReason *string
	if err = runtime.BindQueryParameter("form", true, false, "reason", c.QueryParams(), &rawReason); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("reason", err))
	}
	var reason string
	if rawReason != nil {
		reason = *rawReason
	}

	cmd, err := commands.NewRevokeShareLinkCommand(legID, token, identityFrom(c), reason, s.now())
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RevokeShareLink.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RecordAgeVerification handles POST /api/v1/shipments/{shipmentId}/age-verification.
func (s *Server) RecordAgeVerification(c echo.Context) error {
	legID, err := bindShipmentID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req AgeVerificationRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	personID, err := parseOptionalID("person.user_id", req.Person.UserID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRecordAgeVerificationCommand(
		legID, identityFrom(c), req.Method, req.Status, req.AgeVerified,
		ageverification.Person{
			UserID:      personID,
			Name:        req.Person.Name,
			Phone:       req.Person.Phone,
			IsAlternate: req.Person.IsAlternate,
		},
		s.now(),
	)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RecordAgeVerification.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetTracking handles GET /api/v1/shipments/{shipmentId}/tracking.
func (s *Server) GetTracking(c echo.Context) error {
	legID, err := bindShipmentID(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetTrackingQuery(legID, identityFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	tracking, err := s.h.GetTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, Tracking{
		CarrierCode: tracking.CarrierCode,
		TrackingID:  tracking.Tracking.TrackingID,
		Status:      tracking.Tracking.Status,
		UpdatedAt:   tracking.Tracking.UpdatedAt,
		Latitude:    tracking.Tracking.Latitude,
		Longitude:   tracking.Tracking.Longitude,
	})
}

// ResolveShareLink handles GET /api/v1/public/share/{token}.
func (s *Server) ResolveShareLink(c echo.Context) error {
	token, err := bindToken(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewResolveShareLinkQuery(token, s.now())
	if err != nil {
		return s.fail(c, err)
	}
	link, err := s.h.ResolveShareLink.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, ResolvedShareLink{
		RecipientID:             link.RecipientID.String(),
		RecipientName:           link.RecipientName,
		ShipmentLegID:           link.ShipmentLegID.String(),
		ShareMethod:             string(link.ShareMethod),
		Status:                  link.Status.String(),
		ExpiresAt:               link.ExpiresAt,
		ScheduledAddress:        toGeoPoint(link.ScheduledAddress),
		RequiresAgeVerification: link.RequiresAgeVerification,
		MinimumAge:              link.MinimumAge,
		Confirmation:            toConfirmationStatus(link.Confirmation),
	})
}

// ConfirmAsAlternate handles POST /api/v1/public/share/{token}/confirm.
func (s *Server) ConfirmAsAlternate(c echo.Context) error {
	token, err := bindToken(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req LocationRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	location, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewConfirmAsAlternateCommand(token, location, req.LocationAccuracy, s.now())
	if err != nil {
		return s.fail(c, err)
	}
	result, err := s.h.ConfirmAsAlternate.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	metrics.AttestationsTotal.WithLabelValues("ALTERNATE", result.Outcome.String()).Inc()
	return c.JSON(http.StatusOK, toAttestationResult(result))
}

// CarrierWebhook handles POST /api/v1/carriers/{code}/webhooks.
func (s *Server) CarrierWebhook(c echo.Context) error {
	var code string
	err := runtime.BindStyledParameterWithOptions("simple", "code", c.Param("code"), &code,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath})
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("code", err))
	}
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewCarrierWebhookCommand(code, payload, c.Request().Header.Get("X-Signature"))
	if err != nil {
		return s.fail(c, err)
	}
	if _, err = s.h.CarrierWebhook.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func bindShipmentID(c echo.Context) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "shipmentId", c.Param("shipmentId"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("shipmentId", err)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("shipmentId", err)
	}
	return id, nil
}

func bindToken(c echo.Context) (string, error) {
	var token string
	err := runtime.BindStyledParameterWithOptions("simple", "token", c.Param("token"), &token,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("token", err)
	}
	return token, nil
}

func parseOptionalID(name string, raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &id, nil
}
