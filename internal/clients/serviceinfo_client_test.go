package clients_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/illmade-knight/service-info/internal/clients"
	"github.com/illmade-knight/service-info/pkg/services"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockAPI serves a minimal copy of the service-info REST API. Relation
// fields hold absolute URLs, the way the backend's hyperlinked serializers
// write them.
func newMockAPI(t *testing.T, paginated bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/api/services/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("id") {
		case "7":
			item := fmt.Sprintf(`{
				"id": 7,
				"name_en": "Some service", "name_ar": "خدمة", "name_fr": "Un service",
				"description_en": "Awesome\nService",
				"location": "SRID=4326;POINT (35.495480 33.888630)",
				"status": "current",
				"sunday_open": "08:00:00", "sunday_close": "16:00:00",
				"friday_open": null, "friday_close": null,
				"provider": "%[1]s/api/providers/3/",
				"area_of_service": "%[1]s/api/serviceareas/5/",
				"type": "%[1]s/api/servicetypes/2/"
			}`, server.URL)
			if paginated {
				fmt.Fprintf(w, `{"count": 1, "next": null, "previous": null, "results": [%s]}`, item)
			} else {
				fmt.Fprintf(w, `[%s]`, item)
			}
		case "500":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			if paginated {
				fmt.Fprint(w, `{"count": 0, "results": []}`)
			} else {
				fmt.Fprint(w, `[]`)
			}
		}
	})
	mux.HandleFunc("/api/providers/3/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id": 3, "name_en": "Joe Provider", "phone_number": "12-345678",
			"number_of_monthly_beneficiaries": 37, "type": "%s/api/providertypes/1/"}`, server.URL)
	})
	mux.HandleFunc("/api/providertypes/1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 1, "number": 1, "name_en": "Local NGO"}`)
	})
	mux.HandleFunc("/api/serviceareas/5/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "5", "name_en": "Beirut", "parent": null}`)
	})
	mux.HandleFunc("/api/servicetypes/2/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 2, "number": 2, "name_en": "Health", "icon": "/media/health.png"}`)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestServiceInfoClient_FetchServices(t *testing.T) {
	ctx := context.Background()

	for _, paginated := range []bool{true, false} {
		t.Run(fmt.Sprintf("paginated=%v", paginated), func(t *testing.T) {
			server := newMockAPI(t, paginated)
			client := clients.NewServiceInfoClient(server.URL+"/", zerolog.Nop(), clients.WithToken("secret"))

			list, err := client.FetchServices(ctx, services.Filter{ID: "7"})
			require.NoError(t, err)
			require.Len(t, list, 1)

			svc := list[0]
			assert.Equal(t, "7", svc.ID)
			assert.Equal(t, "Un service", svc.Name.In("fr"))
			assert.Equal(t, "Awesome\nService", svc.Description.EN)
			assert.Equal(t, "SRID=4326;POINT (35.495480 33.888630)", svc.Location)
			assert.Equal(t, "08:00:00", svc.Schedule[0].Open)
			assert.True(t, svc.Schedule[5].Closed())
			assert.Equal(t, server.URL+"/api/providers/3/", svc.ProviderRef)

			empty, err := client.FetchServices(ctx, services.Filter{ID: "404"})
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestServiceInfoClient_Errors(t *testing.T) {
	ctx := context.Background()
	server := newMockAPI(t, true)
	client := clients.NewServiceInfoClient(server.URL, zerolog.Nop(), clients.WithToken("secret"))

	t.Run("unexpected status", func(t *testing.T) {
		_, err := client.FetchServices(ctx, services.Filter{ID: "500"})
		require.Error(t, err)
		var se *clients.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusInternalServerError, se.Code)
	})

	t.Run("missing relation", func(t *testing.T) {
		_, err := client.GetServiceType(ctx, "99")
		require.ErrorIs(t, err, services.ErrRelationNotFound)
	})

	t.Run("unreachable server", func(t *testing.T) {
		dead := clients.NewServiceInfoClient("http://127.0.0.1:1", zerolog.Nop())
		_, err := dead.FetchServices(ctx, services.Filter{ID: "7"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute request")
	})
}

func TestServiceInfoClient_Relations(t *testing.T) {
	ctx := context.Background()
	server := newMockAPI(t, true)
	client := clients.NewServiceInfoClient(server.URL, zerolog.Nop(), clients.WithHTTPClient(server.Client()))

	t.Run("by url", func(t *testing.T) {
		p, err := client.GetProvider(ctx, server.URL+"/api/providers/3/")
		require.NoError(t, err)
		assert.Equal(t, "Joe Provider", p.Name.EN)
		assert.Equal(t, 37, p.NumberOfMonthlyBeneficiaries)
		assert.Equal(t, server.URL+"/api/providertypes/1/", p.TypeRef)
	})

	t.Run("by id", func(t *testing.T) {
		pt, err := client.GetProviderType(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Local NGO", pt.Name.EN)

		st, err := client.GetServiceType(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, "/media/health.png", st.IconURL)
	})

	t.Run("by path", func(t *testing.T) {
		a, err := client.GetServiceArea(ctx, "/api/serviceareas/5/")
		require.NoError(t, err)
		assert.Equal(t, "5", a.ID)
		assert.Empty(t, a.ParentRef)
	})

	t.Run("through the resolver", func(t *testing.T) {
		serviceClient := clients.NewServiceInfoClient(server.URL, zerolog.Nop(), clients.WithToken("secret"))
		lookup, err := services.NewResolver(serviceClient, zerolog.Nop()).Resolve(ctx, "7")
		require.NoError(t, err)
		snap, ok := lookup.Snapshot()
		require.True(t, ok)
		assert.Equal(t, "Local NGO", snap.ProviderType.Name.EN)
		assert.Equal(t, "Beirut", snap.Area.Name.EN)
		assert.Equal(t, "Health", snap.Type.Name.EN)
	})
}
