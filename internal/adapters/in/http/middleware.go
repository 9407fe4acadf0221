package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"handoff/internal/core/ports"
	"handoff/internal/metrics"
	"handoff/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

const identityKey = "handoff.identity"

func identityFrom(c echo.Context) ports.Identity {
	id, _ := c.Get(identityKey).(ports.Identity)
	return id
}

func (s *Server) authenticate(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			credential, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || credential == "" {
				return s.fail(c, fmt.Errorf("%w: bearer token required", errs.ErrUnauthenticated))
			}

			identity, err := resolver.Resolve(c.Request().Context(), credential)
			if err != nil {
				return s.fail(c, err)
			}
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// requireCapability lets the request through when the caller holds any of caps.
func (s *Server) requireCapability(caps ...ports.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := identityFrom(c)
			for _, capability := range caps {
				if identity.Has(capability) {
					return next(c)
				}
			}
			return s.fail(c, fmt.Errorf("%w: requires one of %v", errs.ErrAccessDenied, caps))
		}
	}
}

func instrument() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			method := c.Request().Method
			metrics.HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(started).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Response().Status)).Inc()
			return nil
		}
	}
}

func newRequestRouter(spec []byte) (routers.Router, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	return legacy.NewRouter(doc)
}

// validateRequests checks requests against the OpenAPI document. Requests
// for paths the document does not describe pass through untouched.
func (s *Server) validateRequests(router routers.Router) echo.MiddlewareFunc {
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
			}
			return next(c)
		}
	}
}
