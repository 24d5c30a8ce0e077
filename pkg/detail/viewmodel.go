package detail

import (
	"context"

	"github.com/illmade-knight/service-info/pkg/geo"
	"github.com/illmade-knight/service-info/pkg/i18n"
	"github.com/illmade-knight/service-info/pkg/services"
)

// ViewModel is what the render step receives. It is built fresh for every
// render and never stored.
type ViewModel struct {
	Service services.Snapshot `json:"service"`
	// MapURL is empty when the service has no parseable location.
	MapURL     string    `json:"mapURL,omitempty"`
	DaysOfWeek [7]string `json:"daysofweek"`
	Lang       string    `json:"lang,omitempty"`
}

// NewViewModel derives the presentation values for snap.
func NewViewModel(snap services.Snapshot, t i18n.Translator) ViewModel {
	return ViewModel{
		Service:    snap,
		MapURL:     geo.MapURLForLocation(snap.Location),
		DaysOfWeek: i18n.Weekdays(t),
		Lang:       i18n.LanguageOf(t),
	}
}

// Renderer turns a view model into markup (or any other output).
type Renderer interface {
	Render(ctx context.Context, vm ViewModel) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, vm ViewModel) error

func (f RendererFunc) Render(ctx context.Context, vm ViewModel) error { return f(ctx, vm) }
