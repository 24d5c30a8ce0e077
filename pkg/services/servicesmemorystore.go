// FILE: pkg/services/servicesmemorystore.go

package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// InMemoryStore is a thread-safe, in-memory implementation of the Store interface.
type InMemoryStore struct {
	sync.RWMutex
	services      map[string]Service
	providers     map[string]Provider
	providerTypes map[string]ProviderType
	areas         map[string]ServiceArea
	serviceTypes  map[string]ServiceType
}

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		services:      make(map[string]Service),
		providers:     make(map[string]Provider),
		providerTypes: make(map[string]ProviderType),
		areas:         make(map[string]ServiceArea),
		serviceTypes:  make(map[string]ServiceType),
	}
}

// --- Service Methods ---

func (s *InMemoryStore) AddService(ctx context.Context, svc Service) error {
	if svc.ID == "" {
		return fmt.Errorf("service id cannot be empty")
	}
	s.Lock()
	defer s.Unlock()
	s.services[svc.ID] = svc
	return nil
}

// FetchServices returns the services matching filter, ordered by id.
func (s *InMemoryStore) FetchServices(ctx context.Context, filter Filter) ([]Service, error) {
	s.RLock()
	defer s.RUnlock()

	if filter.ID != "" {
		svc, ok := s.services[filter.ID]
		if !ok {
			return []Service{}, nil
		}
		return []Service{svc}, nil
	}

	all := make([]Service, 0, len(s.services))
	for _, svc := range s.services {
		all = append(all, svc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// --- Related Entity Methods ---

func (s *InMemoryStore) AddProvider(ctx context.Context, p Provider) error {
	s.Lock()
	defer s.Unlock()
	s.providers[p.ID] = p
	return nil
}

func (s *InMemoryStore) GetProvider(ctx context.Context, ref string) (Provider, error) {
	s.RLock()
	defer s.RUnlock()
	p, ok := s.providers[RefID(ref)]
	if !ok {
		return Provider{}, fmt.Errorf("provider %s: %w", ref, ErrRelationNotFound)
	}
	return p, nil
}

func (s *InMemoryStore) AddProviderType(ctx context.Context, pt ProviderType) error {
	s.Lock()
	defer s.Unlock()
	s.providerTypes[pt.ID] = pt
	return nil
}

func (s *InMemoryStore) GetProviderType(ctx context.Context, ref string) (ProviderType, error) {
	s.RLock()
	defer s.RUnlock()
	pt, ok := s.providerTypes[RefID(ref)]
	if !ok {
		return ProviderType{}, fmt.Errorf("provider type %s: %w", ref, ErrRelationNotFound)
	}
	return pt, nil
}

func (s *InMemoryStore) AddServiceArea(ctx context.Context, a ServiceArea) error {
	s.Lock()
	defer s.Unlock()
	s.areas[a.ID] = a
	return nil
}

func (s *InMemoryStore) GetServiceArea(ctx context.Context, ref string) (ServiceArea, error) {
	s.RLock()
	defer s.RUnlock()
	a, ok := s.areas[RefID(ref)]
	if !ok {
		return ServiceArea{}, fmt.Errorf("service area %s: %w", ref, ErrRelationNotFound)
	}
	return a, nil
}

func (s *InMemoryStore) AddServiceType(ctx context.Context, st ServiceType) error {
	s.Lock()
	defer s.Unlock()
	s.serviceTypes[st.ID] = st
	return nil
}

func (s *InMemoryStore) GetServiceType(ctx context.Context, ref string) (ServiceType, error) {
	s.RLock()
	defer s.RUnlock()
	st, ok := s.serviceTypes[RefID(ref)]
	if !ok {
		return ServiceType{}, fmt.Errorf("service type %s: %w", ref, ErrRelationNotFound)
	}
	return st, nil
}
