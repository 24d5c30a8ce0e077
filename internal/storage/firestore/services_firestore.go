// Package firestore provides persistent storage implementations using Google Cloud Firestore.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/illmade-knight/service-info/pkg/services"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	servicesCollection      = "services"
	providersCollection     = "providers"
	providerTypesCollection = "providertypes"
	areasCollection         = "serviceareas"
	serviceTypesCollection  = "servicetypes"
)

// ServicesStore is a concrete implementation of the services.Store interface using Firestore.
// Document ids are the entity ids; references may be ids or API URLs (see services.RefID).
type ServicesStore struct {
	client        *firestore.Client
	services      *firestore.CollectionRef
	providers     *firestore.CollectionRef
	providerTypes *firestore.CollectionRef
	areas         *firestore.CollectionRef
	serviceTypes  *firestore.CollectionRef
}

// NewServicesStore creates a new Firestore-backed store for services and their related entities.
func NewServicesStore(client *firestore.Client) *ServicesStore {
	return &ServicesStore{
		client:        client,
		services:      client.Collection(servicesCollection),
		providers:     client.Collection(providersCollection),
		providerTypes: client.Collection(providerTypesCollection),
		areas:         client.Collection(areasCollection),
		serviceTypes:  client.Collection(serviceTypesCollection),
	}
}

// --- Service Methods ---

// AddService saves a service, replacing any document with the same id.
func (s *ServicesStore) AddService(ctx context.Context, svc services.Service) error {
	if svc.ID == "" {
		return fmt.Errorf("service id cannot be empty")
	}
	_, err := s.services.Doc(svc.ID).Set(ctx, toServiceDocument(svc))
	return err
}

// FetchServices returns the service with filter.ID, or every service when no id is given.
func (s *ServicesStore) FetchServices(ctx context.Context, filter services.Filter) ([]services.Service, error) {
	if filter.ID == "" {
		return processServiceIterator(s.services.OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx))
	}

	doc, err := s.services.Doc(filter.ID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []services.Service{}, nil
		}
		return nil, err
	}
	var sd serviceDocument
	if err := doc.DataTo(&sd); err != nil {
		return nil, err
	}
	return []services.Service{toService(doc.Ref.ID, sd)}, nil
}

// processServiceIterator is a helper to drain results from a Firestore iterator.
func processServiceIterator(iter *firestore.DocumentIterator) ([]services.Service, error) {
	defer iter.Stop()
	var results []services.Service
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var sd serviceDocument
		if err := doc.DataTo(&sd); err != nil {
			return nil, err
		}
		results = append(results, toService(doc.Ref.ID, sd))
	}
	return results, nil
}

// --- Related Entity Methods ---

func (s *ServicesStore) AddProvider(ctx context.Context, p services.Provider) error {
	_, err := s.providers.Doc(p.ID).Set(ctx, providerDocument{
		Name:                         fromLocalized(p.Name),
		Description:                  fromLocalized(p.Description),
		PhoneNumber:                  p.PhoneNumber,
		Website:                      p.Website,
		NumberOfMonthlyBeneficiaries: p.NumberOfMonthlyBeneficiaries,
		TypeRef:                      p.TypeRef,
	})
	return err
}

func (s *ServicesStore) GetProvider(ctx context.Context, ref string) (services.Provider, error) {
	var pd providerDocument
	id, err := getRelated(ctx, s.providers, "provider", ref, &pd)
	if err != nil {
		return services.Provider{}, err
	}
	return services.Provider{
		ID:                           id,
		Name:                         pd.Name.toLocalized(),
		Description:                  pd.Description.toLocalized(),
		PhoneNumber:                  pd.PhoneNumber,
		Website:                      pd.Website,
		NumberOfMonthlyBeneficiaries: pd.NumberOfMonthlyBeneficiaries,
		TypeRef:                      pd.TypeRef,
	}, nil
}

func (s *ServicesStore) AddProviderType(ctx context.Context, pt services.ProviderType) error {
	_, err := s.providerTypes.Doc(pt.ID).Set(ctx, typeDocument{Number: pt.Number, Name: fromLocalized(pt.Name)})
	return err
}

func (s *ServicesStore) GetProviderType(ctx context.Context, ref string) (services.ProviderType, error) {
	var td typeDocument
	id, err := getRelated(ctx, s.providerTypes, "provider type", ref, &td)
	if err != nil {
		return services.ProviderType{}, err
	}
	return services.ProviderType{ID: id, Number: td.Number, Name: td.Name.toLocalized()}, nil
}

func (s *ServicesStore) AddServiceArea(ctx context.Context, a services.ServiceArea) error {
	_, err := s.areas.Doc(a.ID).Set(ctx, areaDocument{Name: fromLocalized(a.Name), ParentRef: a.ParentRef})
	return err
}

func (s *ServicesStore) GetServiceArea(ctx context.Context, ref string) (services.ServiceArea, error) {
	var ad areaDocument
	id, err := getRelated(ctx, s.areas, "service area", ref, &ad)
	if err != nil {
		return services.ServiceArea{}, err
	}
	return services.ServiceArea{ID: id, Name: ad.Name.toLocalized(), ParentRef: ad.ParentRef}, nil
}

func (s *ServicesStore) AddServiceType(ctx context.Context, st services.ServiceType) error {
	_, err := s.serviceTypes.Doc(st.ID).Set(ctx, typeDocument{Number: st.Number, Name: fromLocalized(st.Name), IconURL: st.IconURL})
	return err
}

func (s *ServicesStore) GetServiceType(ctx context.Context, ref string) (services.ServiceType, error) {
	var td typeDocument
	id, err := getRelated(ctx, s.serviceTypes, "service type", ref, &td)
	if err != nil {
		return services.ServiceType{}, err
	}
	return services.ServiceType{ID: id, Number: td.Number, Name: td.Name.toLocalized(), IconURL: td.IconURL}, nil
}

// getRelated loads the document a reference points at into dst and returns its id.
func getRelated(ctx context.Context, coll *firestore.CollectionRef, kind, ref string, dst interface{}) (string, error) {
	id := services.RefID(ref)
	if id == "" {
		return "", fmt.Errorf("%s %q: %w", kind, ref, services.ErrRelationNotFound)
	}
	doc, err := coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", fmt.Errorf("%s %s: %w", kind, ref, services.ErrRelationNotFound)
		}
		return "", err
	}
	if err := doc.DataTo(dst); err != nil {
		return "", err
	}
	return id, nil
}
