// Package web serves the service detail page and its JSON view over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/illmade-knight/service-info/app"
	"github.com/illmade-knight/service-info/pkg/detail"
	"github.com/illmade-knight/service-info/pkg/i18n"
	"github.com/illmade-knight/service-info/pkg/notify"
	"github.com/rs/zerolog"
)

// DetailService runs a detail navigation. It is implemented by *app.App.
type DetailService interface {
	ServiceDetail(ctx context.Context, req app.DetailRequest) app.DetailResult
	Translator(lang string) i18n.Translator
}

// History lists recent notifications. It is implemented by *notify.Board.
type History interface {
	History() []notify.Event
}

// Handler is the HTTP surface of the application.
type Handler struct {
	detail  DetailService
	history History
	tmpl    *template.Template
	logger  zerolog.Logger
	router  *mux.Router
}

// NewHandler creates the handler and registers its routes.
func NewHandler(svc DetailService, history History, logger zerolog.Logger) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	h := &Handler{
		detail:  svc,
		history: history,
		tmpl:    tmpl,
		logger:  logger.With().Str("component", "web").Logger(),
		router:  mux.NewRouter(),
	}
	h.router.HandleFunc("/services/{id}", h.servicePage).Methods(http.MethodGet)
	h.router.HandleFunc("/api/services/{id}/view", h.serviceView).Methods(http.MethodGet)
	h.router.HandleFunc("/api/notifications", h.notifications).Methods(http.MethodGet)
	h.router.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// requestLanguage prefers ?lang= over the Accept-Language header.
func requestLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return r.Header.Get("Accept-Language")
}

// statusFor maps a settled navigation to an HTTP status.
func statusFor(res app.DetailResult) int {
	switch res.State {
	case detail.StateReady:
		return http.StatusOK
	case detail.StateNotFound:
		return http.StatusNotFound
	case detail.StateFailed:
		if errors.Is(res.Err, detail.ErrRender) {
			return http.StatusInternalServerError
		}
		return http.StatusBadGateway
	default:
		// Discarded: the request context ended before the service resolved.
		return http.StatusServiceUnavailable
	}
}

func (h *Handler) servicePage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	messages := notify.NewBoard(0)
	renderer := &htmlRenderer{tmpl: h.tmpl, translator: h.detail.Translator}

	res := h.detail.ServiceDetail(r.Context(), app.DetailRequest{
		ServiceID: id,
		Lang:      requestLanguage(r),
		Renderer:  renderer,
		Reporter:  messages,
	})

	status := statusFor(res)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status == http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write(renderer.buf.Bytes())
		return
	}

	t := h.detail.Translator(res.Lang)
	page := errorPage{Lang: res.Lang, Title: t.Translate("ServiceDetail.Error")}
	if status == http.StatusNotFound {
		page.Title = t.Translate("ServiceDetail.NotFound")
	}
	if ev, ok := messages.Current(); ok {
		page.Message = ev.Message
	}
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, "error.html", page); err != nil {
		h.logger.Error().Err(err).Str("service_id", id).Msg("Failed to render error page")
	}
}

type viewError struct {
	Error string `json:"error"`
	State string `json:"state"`
}

func (h *Handler) serviceView(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	renderer := &jsonRenderer{}

	res := h.detail.ServiceDetail(r.Context(), app.DetailRequest{
		ServiceID: id,
		Lang:      requestLanguage(r),
		Renderer:  renderer,
	})

	status := statusFor(res)
	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write(renderer.buf.Bytes())
		return
	}

	body := viewError{State: res.State.String()}
	if res.Err != nil {
		body.Error = res.Err.Error()
	}
	h.writeJSON(w, status, body)
}

func (h *Handler) notifications(w http.ResponseWriter, r *http.Request) {
	events := h.history.History()
	if events == nil {
		events = []notify.Event{}
	}
	h.writeJSON(w, http.StatusOK, events)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info().Msg("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
