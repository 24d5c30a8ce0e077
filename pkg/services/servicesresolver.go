// FILE: pkg/services/servicesresolver.go

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Lookup is the tagged outcome of a resolution: either a found snapshot or
// not found. The zero value is NotFound.
type Lookup struct {
	snapshot Snapshot
	found    bool
}

// NotFound is the Lookup for an id that matched no service.
var NotFound = Lookup{}

// Found wraps a resolved snapshot.
func Found(s Snapshot) Lookup {
	return Lookup{snapshot: s, found: true}
}

// Snapshot returns the resolved service and whether one was found.
func (l Lookup) Snapshot() (Snapshot, bool) {
	return l.snapshot, l.found
}

// Resolver fetches a service by id and resolves its sub-entities.
type Resolver struct {
	reader Reader
	logger zerolog.Logger
}

// NewResolver creates a resolver reading from reader. It keeps no cache;
// every call goes to the data source.
func NewResolver(reader Reader, logger zerolog.Logger) *Resolver {
	return &Resolver{
		reader: reader,
		logger: logger.With().Str("component", "service-resolver").Logger(),
	}
}

// Resolve fetches the service with the given id. The first result of the
// filtered collection fetch is used; an empty result is NotFound, not an
// error. Fetch and sub-entity failures are returned wrapped.
func (r *Resolver) Resolve(ctx context.Context, id string) (Lookup, error) {
	logger := r.logger.With().Str("service_id", id).Logger()

	list, err := r.reader.FetchServices(ctx, Filter{ID: id})
	if err != nil {
		return Lookup{}, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	if len(list) == 0 {
		logger.Debug().Msg("No service matched id")
		return NotFound, nil
	}
	if len(list) > 1 {
		logger.Warn().Int("count", len(list)).Msg("Filter by id matched several services, using the first")
	}

	h := NewHydrated(list[0])
	if err := h.LoadSubModels(ctx, r.reader); err != nil {
		return Lookup{}, fmt.Errorf("failed to resolve related entities of service %s: %w", id, err)
	}

	logger.Debug().Int("relations", len(list[0].Relations())).Msg("Resolved service")
	return Found(h.Data()), nil
}
