package services_test

import (
	"context"
	"testing"

	"github.com/illmade-knight/service-info/pkg/services"
	"github.com/stretchr/testify/require"
)

// seedStore fills a store with one fully related service (id "7") and one
// service without relations (id "8").
func seedStore(t *testing.T) *services.InMemoryStore {
	t.Helper()
	ctx := context.Background()
	store := services.NewInMemoryStore()

	require.NoError(t, store.AddProviderType(ctx, services.ProviderType{
		ID: "1", Number: 1, Name: services.Localized{EN: "Local NGO", AR: "منظمة غير حكومية محلية"},
	}))
	require.NoError(t, store.AddProvider(ctx, services.Provider{
		ID:          "3",
		Name:        services.Localized{EN: "Joe Provider"},
		PhoneNumber: "12-345678",
		TypeRef:     "https://example.org/api/providertypes/1/",
	}))
	require.NoError(t, store.AddServiceArea(ctx, services.ServiceArea{ID: "5", Name: services.Localized{EN: "Beirut", FR: "Beyrouth"}}))
	require.NoError(t, store.AddServiceType(ctx, services.ServiceType{ID: "2", Number: 2, Name: services.Localized{EN: "Health"}}))
	require.NoError(t, store.AddService(ctx, services.Service{
		ID:          "7",
		Name:        services.Localized{EN: "Some service"},
		Description: services.Localized{EN: "Awesome\nService"},
		Location:    "POINT (35.495480 33.888630)",
		ProviderRef: "3",
		AreaRef:     "https://example.org/api/serviceareas/5/",
		TypeRef:     "2",
	}))
	require.NoError(t, store.AddService(ctx, services.Service{ID: "8", Name: services.Localized{EN: "Bare"}}))
	return store
}
