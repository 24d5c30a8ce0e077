// FILE: pkg/services/servicesstore.go

package services

import (
	"context"
	"errors"
)

var (
	// ErrServiceNotFound is reported when a lookup by id matches no service.
	ErrServiceNotFound = errors.New("service not found")
	// ErrRelationNotFound is returned when a referenced sub-entity does not exist.
	ErrRelationNotFound = errors.New("related entity not found")
)

// Filter narrows a collection fetch. An empty ID matches every service.
type Filter struct {
	ID string
}

// Source is the collection-style fetch for services.
type Source interface {
	FetchServices(ctx context.Context, filter Filter) ([]Service, error)
}

// RelatedSource fetches the sub-entities a record references. Every method
// accepts either an id or an API URL as ref.
type RelatedSource interface {
	GetProvider(ctx context.Context, ref string) (Provider, error)
	GetProviderType(ctx context.Context, ref string) (ProviderType, error)
	GetServiceArea(ctx context.Context, ref string) (ServiceArea, error)
	GetServiceType(ctx context.Context, ref string) (ServiceType, error)
}

// Reader is everything the resolver needs from a data source.
type Reader interface {
	Source
	RelatedSource
}

// Store is a Reader that can also be written to.
type Store interface {
	Reader
	AddService(ctx context.Context, s Service) error
	AddProvider(ctx context.Context, p Provider) error
	AddProviderType(ctx context.Context, pt ProviderType) error
	AddServiceArea(ctx context.Context, a ServiceArea) error
	AddServiceType(ctx context.Context, st ServiceType) error
}
