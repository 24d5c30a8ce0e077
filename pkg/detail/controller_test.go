package detail_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/illmade-knight/service-info/pkg/detail"
	"github.com/illmade-knight/service-info/pkg/i18n"
	"github.com/illmade-knight/service-info/pkg/services"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Dependencies ---

type mockResolver struct {
	ResolveFunc func(ctx context.Context, id string) (services.Lookup, error)
}

func (m *mockResolver) Resolve(ctx context.Context, id string) (services.Lookup, error) {
	return m.ResolveFunc(ctx, id)
}

type recordingReporter struct {
	mu       sync.Mutex
	notified []error
	cleared  int
}

func (r *recordingReporter) Notify(ctx context.Context, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notified = append(r.notified, err)
}

func (r *recordingReporter) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared++
}

func (r *recordingReporter) errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.notified...)
}

type recordingRenderer struct {
	mu      sync.Mutex
	renders []detail.ViewModel
	err     error
}

func (r *recordingRenderer) Render(ctx context.Context, vm detail.ViewModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders = append(r.renders, vm)
	return r.err
}

func (r *recordingRenderer) calls() []detail.ViewModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]detail.ViewModel(nil), r.renders...)
}

func testSnapshot() services.Snapshot {
	return services.Snapshot{
		Service: services.Service{
			ID:       "7",
			Name:     services.Localized{EN: "Clinic"},
			Location: "40.702147 -74.015794",
		},
		Provider: &services.Provider{ID: "3", Name: services.Localized{EN: "Joe Provider"}},
	}
}

func foundResolver(snap services.Snapshot) *mockResolver {
	return &mockResolver{ResolveFunc: func(ctx context.Context, id string) (services.Lookup, error) {
		return services.Found(snap), nil
	}}
}

func newCatalogTranslator(t *testing.T, lang string) i18n.Translator {
	t.Helper()
	catalog, err := i18n.Default()
	require.NoError(t, err)
	return catalog.Translator(lang)
}

// --- Test Suite ---

func TestController_Ready(t *testing.T) {
	ctx := context.Background()
	reporter := &recordingReporter{}
	renderer := &recordingRenderer{}

	var gotID string
	resolver := &mockResolver{ResolveFunc: func(ctx context.Context, id string) (services.Lookup, error) {
		gotID = id
		return services.Found(testSnapshot()), nil
	}}

	c := detail.New("7", detail.Deps{
		Resolver:   resolver,
		Translator: newCatalogTranslator(t, "fr"),
		Reporter:   reporter,
		Renderer:   renderer,
		Logger:     zerolog.Nop(),
	})
	assert.Equal(t, detail.StateIdle, c.State())

	state := c.Run(ctx)

	assert.Equal(t, detail.StateReady, state)
	assert.True(t, state.Terminal())
	assert.Equal(t, "7", gotID)
	assert.NoError(t, c.Err())
	assert.Equal(t, 1, reporter.cleared)
	assert.Empty(t, reporter.errors())

	renders := renderer.calls()
	require.Len(t, renders, 1)
	vm := renders[0]
	assert.Equal(t, "Clinic", vm.Service.Name.EN)
	assert.Equal(t, "Joe Provider", vm.Service.Provider.Name.EN)
	assert.Equal(t, "https://maps.googleapis.com/maps/api/staticmap?center=-74.015794,40.702147&zoom=8&size=640x150&markers=color:red%7C-74.015794,40.702147", vm.MapURL)
	assert.Equal(t, "Dimanche", vm.DaysOfWeek[0])
	assert.Equal(t, "Samedi", vm.DaysOfWeek[6])
	assert.Equal(t, "fr", vm.Lang)
}

func TestController_NoLocationStillRenders(t *testing.T) {
	snap := testSnapshot()
	snap.Location = ""
	renderer := &recordingRenderer{}

	c := detail.New("7", detail.Deps{Resolver: foundResolver(snap), Renderer: renderer})
	require.Equal(t, detail.StateReady, c.Run(context.Background()))

	renders := renderer.calls()
	require.Len(t, renders, 1)
	assert.Empty(t, renders[0].MapURL)
	assert.Equal(t, "Global.Sunday", renders[0].DaysOfWeek[0], "nil translator echoes keys")
}

func TestController_Failed(t *testing.T) {
	boom := errors.New("503 from data source")
	reporter := &recordingReporter{}
	renderer := &recordingRenderer{}
	resolver := &mockResolver{ResolveFunc: func(ctx context.Context, id string) (services.Lookup, error) {
		return services.Lookup{}, boom
	}}

	c := detail.New("7", detail.Deps{Resolver: resolver, Reporter: reporter, Renderer: renderer, Logger: zerolog.Nop()})
	state := c.Run(context.Background())

	assert.Equal(t, detail.StateFailed, state)
	assert.Empty(t, renderer.calls())
	notified := reporter.errors()
	require.Len(t, notified, 1)
	assert.Same(t, boom, notified[0], "error forwarded unchanged")
	assert.Same(t, boom, c.Err())
}

func TestController_NotFound(t *testing.T) {
	reporter := &recordingReporter{}
	renderer := &recordingRenderer{}
	resolver := &mockResolver{ResolveFunc: func(ctx context.Context, id string) (services.Lookup, error) {
		return services.NotFound, nil
	}}

	c := detail.New("404", detail.Deps{Resolver: resolver, Reporter: reporter, Renderer: renderer})
	state := c.Run(context.Background())

	assert.Equal(t, detail.StateNotFound, state)
	assert.Empty(t, renderer.calls())
	require.Len(t, reporter.errors(), 1)
	assert.ErrorIs(t, reporter.errors()[0], services.ErrServiceNotFound)
	assert.ErrorIs(t, c.Err(), services.ErrServiceNotFound)
}

func TestController_RenderError(t *testing.T) {
	reporter := &recordingReporter{}
	renderer := &recordingRenderer{err: errors.New("template exploded")}

	c := detail.New("7", detail.Deps{Resolver: foundResolver(testSnapshot()), Reporter: reporter, Renderer: renderer})
	assert.Equal(t, detail.StateFailed, c.Run(context.Background()))
	assert.Len(t, renderer.calls(), 1)
	require.Len(t, reporter.errors(), 1)
	assert.Contains(t, reporter.errors()[0].Error(), "template exploded")
	assert.ErrorIs(t, c.Err(), detail.ErrRender)
}

func TestController_SingleResolution(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	release := make(chan struct{})
	resolver := &mockResolver{ResolveFunc: func(ctx context.Context, id string) (services.Lookup, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return services.Found(testSnapshot()), nil
	}}
	renderer := &recordingRenderer{}
	c := detail.New("7", detail.Deps{Resolver: resolver, Renderer: renderer})

	ctx := context.Background()
	first := c.Start(ctx)
	second := c.Start(ctx)
	assert.Equal(t, detail.StateLoading, c.State())
	close(release)
	<-first
	<-second

	assert.Equal(t, 1, calls)
	assert.Len(t, renderer.calls(), 1)
	assert.Equal(t, detail.StateReady, c.Run(ctx), "a settled controller does not resolve again")
	assert.Equal(t, 1, calls)
}

func TestController_DiscardedIsNoOp(t *testing.T) {
	started := make(chan struct{})
	resolver := &mockResolver{ResolveFunc: func(ctx context.Context, id string) (services.Lookup, error) {
		close(started)
		<-ctx.Done()
		return services.Lookup{}, ctx.Err()
	}}
	reporter := &recordingReporter{}
	renderer := &recordingRenderer{}
	c := detail.New("7", detail.Deps{Resolver: resolver, Reporter: reporter, Renderer: renderer})

	done := c.Start(context.Background())
	<-started
	c.Discard()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("discarded controller did not settle")
	}
	assert.Empty(t, renderer.calls())
	assert.Empty(t, reporter.errors())
	assert.Equal(t, detail.StateLoading, c.State())
}

func TestController_DiscardBeforeStart(t *testing.T) {
	resolver := &mockResolver{ResolveFunc: func(ctx context.Context, id string) (services.Lookup, error) {
		t.Error("resolver must not be called")
		return services.NotFound, nil
	}}
	c := detail.New("7", detail.Deps{Resolver: resolver, Renderer: &recordingRenderer{}})
	c.Discard()
	<-c.Start(context.Background())
	assert.Equal(t, detail.StateIdle, c.State())
}

func TestController_CancelledRunDiscards(t *testing.T) {
	resolver := &mockResolver{ResolveFunc: func(ctx context.Context, id string) (services.Lookup, error) {
		<-ctx.Done()
		return services.Lookup{}, ctx.Err()
	}}
	reporter := &recordingReporter{}
	c := detail.New("7", detail.Deps{Resolver: resolver, Reporter: reporter, Renderer: &recordingRenderer{}})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	c.Run(ctx)

	assert.Empty(t, reporter.errors())
}

func TestController_Idempotent(t *testing.T) {
	snap := testSnapshot()
	tr := newCatalogTranslator(t, "ar")

	var views []detail.ViewModel
	for i := 0; i < 2; i++ {
		renderer := &recordingRenderer{}
		c := detail.New("7", detail.Deps{Resolver: foundResolver(snap), Translator: tr, Renderer: renderer})
		require.Equal(t, detail.StateReady, c.Run(context.Background()))
		views = append(views, renderer.calls()...)
	}
	require.Len(t, views, 2)
	assert.Equal(t, views[0], views[1])
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loading", detail.StateLoading.String())
	assert.Equal(t, "not_found", detail.StateNotFound.String())
	assert.False(t, detail.StateLoading.Terminal())
}
