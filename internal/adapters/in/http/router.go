package http

import (
	"net/http"
	"sync"

	"handoff/api"
	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

type openAPIDoc struct{}

func (openAPIDoc) ReadDoc() string {
	return string(api.OpenAPI)
}

var registerDocOnce sync.Once

// Register mounts the service routes on e. Everything under /api/v1 is
// validated against the embedded OpenAPI document first.
func (s *Server) Register(e *echo.Echo, resolver ports.IdentityResolver) error {
	requestRouter, err := newRequestRouter(api.OpenAPI)
	if err != nil {
		return err
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{})
	})

	e.Use(middleware.Recover())
	e.Use(instrument())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", s.validateRequests(requestRouter))

	// Public
	v1.GET("/public/share/:token", s.ResolveShareLink)
	v1.POST("/public/share/:token/confirm", s.ConfirmAsAlternate)
	v1.POST("/carriers/:code/webhooks", s.CarrierWebhook)

	var (
		agent    = s.requireCapability(ports.CapabilityAgent)
		customer = s.requireCapability(ports.CapabilityCustomer)
		owner    = s.requireCapability(ports.CapabilityCustomer, ports.CapabilityAdmin)
		anyone   = s.requireCapability(ports.CapabilityAgent, ports.CapabilityCustomer, ports.CapabilityAdmin)
	)

	shipments := v1.Group("/shipments/:shipmentId", s.authenticate(resolver))
	shipments.POST("/confirmations/agent", s.SubmitAttestation(confirmation.Agent), agent)
	shipments.POST("/confirmations/customer", s.SubmitAttestation(confirmation.Customer), customer)
	shipments.POST("/unavailability/agent", s.MarkUnavailable(confirmation.Agent), agent)
	shipments.POST("/unavailability/customer", s.MarkUnavailable(confirmation.Customer), customer)
	shipments.GET("/confirmation", s.GetConfirmationStatus, anyone)
	shipments.POST("/share-links", s.IssueShareLinks, owner)
	shipments.GET("/share-links", s.ListShareLinks, owner)
	shipments.DELETE("/share-links/:token", s.RevokeShareLink, owner)
	shipments.POST("/age-verification", s.RecordAgeVerification,
		s.requireCapability(ports.CapabilityAgent, ports.CapabilityAdmin))
	shipments.GET("/tracking", s.GetTracking)

	return nil
}
