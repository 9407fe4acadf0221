package ports

import (
	"context"
	"slices"

	"handoff/internal/core/domain/model/kernel"
)

type Capability string

const (
	CapabilityAgent    Capability = "agent"
	CapabilityCustomer Capability = "customer"
	CapabilityAdmin    Capability = "admin"
)

// Identity is the authenticated caller: who, for which tenant, allowed to do what.
type Identity struct {
	UserID       kernel.UUID
	TenantID     kernel.UUID
	Capabilities []Capability
}

func (i Identity) Has(c Capability) bool {
	return slices.Contains(i.Capabilities, c)
}

func (i Identity) IsAdmin() bool {
	return i.Has(CapabilityAdmin)
}

// IdentityResolver turns a presented credential into an Identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, credential string) (Identity, error)
}
