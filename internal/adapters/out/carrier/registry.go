// Package carrier resolves carrier providers by code.
package carrier

import (
	"fmt"
	"strings"

	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
)

type Registry struct {
	providers map[string]ports.CarrierProvider
}

func NewRegistry(providers ...ports.CarrierProvider) (*Registry, error) {
	r := &Registry{providers: make(map[string]ports.CarrierProvider, len(providers))}
	for _, p := range providers {
		code := strings.ToUpper(p.Code())
		if _, dup := r.providers[code]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("carriers", fmt.Errorf("duplicate carrier code %s", code))
		}
		r.providers[code] = p
	}
	return r, nil
}

func (r *Registry) Provider(code string) (ports.CarrierProvider, error) {
	p, ok := r.providers[strings.ToUpper(code)]
	if !ok {
		return nil, errs.NewObjectNotFoundError("carrier", code)
	}
	return p, nil
}

func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.providers))
	for code := range r.providers {
		codes = append(codes, code)
	}
	return codes
}
