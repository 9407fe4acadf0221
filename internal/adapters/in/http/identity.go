package http

import (
	"context"
	"fmt"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

type identityClaims struct {
	UserID       string   `json:"user_id"`
	TenantID     string   `json:"tenant_id"`
	Capabilities []string `json:"capabilities"`
	jwt.RegisteredClaims
}

// JWTIdentityResolver implements ports.IdentityResolver for HS256 bearer tokens.
type JWTIdentityResolver struct {
	secret []byte
}

func NewJWTIdentityResolver(secret string) *JWTIdentityResolver {
	return &JWTIdentityResolver{secret: []byte(secret)}
}

func (r *JWTIdentityResolver) Resolve(_ context.Context, credential string) (ports.Identity, error) {
	var claims identityClaims
	_, err := jwt.ParseWithClaims(credential, &claims, func(*jwt.Token) (any, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ports.Identity{}, fmt.Errorf("%w: %w", errs.ErrUnauthenticated, err)
	}

	userID, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return ports.Identity{}, fmt.Errorf("%w: user_id: %w", errs.ErrUnauthenticated, err)
	}
	tenantID, err := kernel.UUIDFromString(claims.TenantID)
	if err != nil {
		return ports.Identity{}, fmt.Errorf("%w: tenant_id: %w", errs.ErrUnauthenticated, err)
	}

	identity := ports.Identity{UserID: userID, TenantID: tenantID}
	for _, c := range claims.Capabilities {
		switch capability := ports.Capability(c); capability {
		case ports.CapabilityAgent, ports.CapabilityCustomer, ports.CapabilityAdmin:
			identity.Capabilities = append(identity.Capabilities, capability)
		}
	}
	return identity, nil
}

// SignIdentityToken issues a token Resolve accepts. It exists for local tooling and tests.
func SignIdentityToken(secret string, identity ports.Identity, claims jwt.RegisteredClaims) (string, error) {
	caps := make([]string, 0, len(identity.Capabilities))
	for _, c := range identity.Capabilities {
		caps = append(caps, string(c))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, identityClaims{
		UserID:           identity.UserID.String(),
		TenantID:         identity.TenantID.String(),
		Capabilities:     caps,
		RegisteredClaims: claims,
	})
	return token.SignedString([]byte(secret))
}
