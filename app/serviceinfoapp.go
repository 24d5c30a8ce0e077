// Package app provides the central orchestrator for the service-info application.
package app

import (
	"context"

	"github.com/illmade-knight/service-info/pkg/detail"
	"github.com/illmade-knight/service-info/pkg/i18n"
	"github.com/illmade-knight/service-info/pkg/notify"
	"github.com/illmade-knight/service-info/pkg/services"
	"github.com/rs/zerolog"
)

// DetailRequest describes one navigation to a service detail page.
type DetailRequest struct {
	ServiceID string
	// Lang is a language tag or an Accept-Language header value.
	Lang     string
	Renderer detail.Renderer
	// Reporter, if set, receives this navigation's notifications in addition
	// to the application reporters.
	Reporter notify.Reporter
}

// DetailResult is how a navigation settled.
type DetailResult struct {
	State detail.State
	Err   error
	Lang  string
}

// App is the central application struct. It holds the resolver, the locale
// catalog and the notification channel shared by every navigation.
type App struct {
	Resolver *services.Resolver
	Catalog  *i18n.Catalog
	Reporter notify.Reporter
	Recent   *notify.Board
	Logger   zerolog.Logger
}

// New creates a new, fully initialized App. Notifications go to reporter and
// to a board keeping the most recent ones.
func New(
	reader services.Reader,
	catalog *i18n.Catalog,
	reporter notify.Reporter,
	logger zerolog.Logger,
) *App {
	recent := notify.NewBoard(50)
	if reporter == nil {
		reporter = notify.Discard
	}
	return &App{
		Resolver: services.NewResolver(reader, logger),
		Catalog:  catalog,
		Reporter: notify.Multi{reporter, recent},
		Recent:   recent,
		Logger:   logger,
	}
}

// Translator returns the translator for a language tag or Accept-Language value.
func (a *App) Translator(lang string) i18n.Translator {
	return a.Catalog.Translator(lang)
}

// ServiceDetail runs one detail controller to completion. Every call is a new
// navigation with its own controller; cancelling ctx discards it.
func (a *App) ServiceDetail(ctx context.Context, req DetailRequest) DetailResult {
	translator := a.Translator(req.Lang)
	lang := i18n.LanguageOf(translator)

	reporter := a.Reporter
	if req.Reporter != nil {
		reporter = notify.Multi{a.Reporter, req.Reporter}
	}

	c := detail.New(req.ServiceID, detail.Deps{
		Resolver:   a.Resolver,
		Translator: translator,
		Reporter:   reporter,
		Renderer:   req.Renderer,
		Logger:     a.Logger,
	})

	state := c.Run(ctx)
	a.Logger.Debug().
		Str("service_id", req.ServiceID).
		Str("lang", lang).
		Stringer("state", state).
		Msg("Service detail settled")
	return DetailResult{State: state, Err: c.Err(), Lang: lang}
}
