// Package detail drives the service detail page: resolve the service, derive
// the view model, render it, or report the failure.
package detail

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/illmade-knight/service-info/pkg/i18n"
	"github.com/illmade-knight/service-info/pkg/notify"
	"github.com/illmade-knight/service-info/pkg/services"
	"github.com/rs/zerolog"
)

// ErrRender marks a failure of the render step, as opposed to resolution.
var ErrRender = errors.New("render failed")

// State is the lifecycle position of a Controller.
type State int32

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
	StateNotFound
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateReady || s == StateFailed || s == StateNotFound
}

// Resolver yields the hydrated service for an id.
type Resolver interface {
	Resolve(ctx context.Context, id string) (services.Lookup, error)
}

// Deps are the collaborators of a Controller. Resolver and Renderer are
// required; a nil Reporter drops notifications and a nil Translator returns
// keys untranslated.
type Deps struct {
	Resolver   Resolver
	Translator i18n.Translator
	Reporter   notify.Reporter
	Renderer   Renderer
	Logger     zerolog.Logger
}

// Controller loads and renders one service. Create a new Controller per
// navigation; an instance runs at most one resolution.
type Controller struct {
	id     string
	deps   Deps
	logger zerolog.Logger

	state     atomic.Int32
	discarded atomic.Bool

	once   sync.Once
	done   chan struct{}
	mu     sync.Mutex
	cancel context.CancelFunc
	err    error
}

// New creates an idle controller for the service id.
func New(id string, deps Deps) *Controller {
	if deps.Reporter == nil {
		deps.Reporter = notify.Discard
	}
	if deps.Translator == nil {
		deps.Translator = i18n.TranslatorFunc(func(key string) string { return key })
	}
	return &Controller{
		id:     id,
		deps:   deps,
		logger: deps.Logger.With().Str("component", "detail-controller").Str("service_id", id).Logger(),
		done:   make(chan struct{}),
	}
}

// ID returns the service id this controller was created for.
func (c *Controller) ID() string { return c.id }

// State returns the current state.
func (c *Controller) State() State { return State(c.state.Load()) }

// Err returns the error that ended the resolution, once Done is closed.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Done is closed when the resolution has settled.
func (c *Controller) Done() <-chan struct{} { return c.done }

// Start clears pending notifications and begins the resolution. Only the
// first call does anything; later calls return the same channel.
func (c *Controller) Start(ctx context.Context) <-chan struct{} {
	c.once.Do(func() {
		if c.discarded.Load() {
			close(c.done)
			return
		}
		ctx, cancel := context.WithCancel(notify.WithServiceID(ctx, c.id))
		c.mu.Lock()
		c.cancel = cancel
		c.mu.Unlock()

		c.deps.Reporter.Clear(ctx)
		c.state.Store(int32(StateLoading))
		c.logger.Debug().Msg("Resolving service")
		go c.run(ctx, cancel)
	})
	return c.done
}

// Run starts the resolution and waits for it. If ctx ends first the
// controller is discarded. Cancelling the context passed to Start has the
// same effect as Discard on a resolution that fails because of it.
func (c *Controller) Run(ctx context.Context) State {
	done := c.Start(ctx)
	select {
	case <-done:
	case <-ctx.Done():
		c.Discard()
		<-done
	}
	return c.State()
}

// Discard marks the controller as no longer displayed. A resolution that
// settles afterwards neither renders nor notifies.
func (c *Controller) Discard() {
	c.discarded.Store(true)
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc) {
	defer close(c.done)
	defer cancel()

	lookup, err := c.deps.Resolver.Resolve(ctx, c.id)
	// A cancelled context means whoever started us is gone: same as Discard.
	if c.discarded.Load() || (err != nil && ctx.Err() != nil) {
		c.logger.Debug().Msg("Controller discarded, dropping result")
		return
	}
	if err != nil {
		c.fail(ctx, err)
		return
	}

	snap, found := lookup.Snapshot()
	if !found {
		err := fmt.Errorf("service %s: %w", c.id, services.ErrServiceNotFound)
		c.finish(StateNotFound, err)
		c.deps.Reporter.Notify(ctx, err)
		return
	}

	vm := NewViewModel(snap, c.deps.Translator)
	c.finish(StateReady, nil)
	if err := c.deps.Renderer.Render(ctx, vm); err != nil {
		c.fail(ctx, fmt.Errorf("service %s: %w: %w", c.id, ErrRender, err))
		return
	}
	c.logger.Debug().Bool("map", vm.MapURL != "").Msg("Rendered service")
}

func (c *Controller) fail(ctx context.Context, err error) {
	c.finish(StateFailed, err)
	c.logger.Warn().Err(err).Msg("Service detail failed")
	c.deps.Reporter.Notify(ctx, err)
}

func (c *Controller) finish(s State, err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
	c.state.Store(int32(s))
}
