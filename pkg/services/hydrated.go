package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Snapshot is the plain, fully hydrated view of a service handed to the
// presentation layer. Relations that the service does not declare are nil.
type Snapshot struct {
	Service
	Provider     *Provider     `json:"provider,omitempty"`
	ProviderType *ProviderType `json:"provider_type,omitempty"`
	Area         *ServiceArea  `json:"area_of_service,omitempty"`
	Type         *ServiceType  `json:"type,omitempty"`
}

// Hydrated is a service whose sub-entities are being resolved in place. It is
// not ready until LoadSubModels has returned without error.
type Hydrated struct {
	service      Service
	provider     *Provider
	providerType *ProviderType
	area         *ServiceArea
	serviceType  *ServiceType
}

// NewHydrated wraps a fetched service.
func NewHydrated(s Service) *Hydrated {
	return &Hydrated{service: s}
}

// LoadSubModels resolves every relation the service declares. Independent
// relations are fetched concurrently; a provider's type is fetched after the
// provider. The first failure cancels the remaining fetches and is returned.
func (h *Hydrated) LoadSubModels(ctx context.Context, src RelatedSource) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, rel := range h.service.Relations() {
		switch rel.Kind {
		case RelationProvider:
			g.Go(func() error {
				p, err := src.GetProvider(gctx, rel.Ref)
				if err != nil {
					return fmt.Errorf("failed to load provider: %w", err)
				}
				h.provider = &p
				for _, sub := range p.Relations() {
					pt, err := src.GetProviderType(gctx, sub.Ref)
					if err != nil {
						return fmt.Errorf("failed to load provider type: %w", err)
					}
					h.providerType = &pt
				}
				return nil
			})
		case RelationArea:
			g.Go(func() error {
				a, err := src.GetServiceArea(gctx, rel.Ref)
				if err != nil {
					return fmt.Errorf("failed to load area of service: %w", err)
				}
				h.area = &a
				return nil
			})
		case RelationServiceType:
			g.Go(func() error {
				st, err := src.GetServiceType(gctx, rel.Ref)
				if err != nil {
					return fmt.Errorf("failed to load service type: %w", err)
				}
				h.serviceType = &st
				return nil
			})
		}
	}

	return g.Wait()
}

// Data returns an immutable copy of the hydrated service.
func (h *Hydrated) Data() Snapshot {
	return Snapshot{
		Service:      h.service,
		Provider:     clone(h.provider),
		ProviderType: clone(h.providerType),
		Area:         clone(h.area),
		Type:         clone(h.serviceType),
	}
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
