// This demo resolves a few services from the demo dataset and prints the
// view models the detail page would render.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/illmade-knight/service-info/app"
	"github.com/illmade-knight/service-info/internal/seed"
	"github.com/illmade-knight/service-info/pkg/detail"
	"github.com/illmade-knight/service-info/pkg/i18n"
	"github.com/illmade-knight/service-info/pkg/notify"
	"github.com/illmade-knight/service-info/pkg/services"
	"github.com/rs/zerolog"
)

func main() {
	log.Println("--- Starting Service Detail Demo ---")
	ctx := context.Background()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// 1. Seed an in-memory store
	store := services.NewInMemoryStore()
	ds, err := seed.Demo()
	if err != nil {
		log.Fatalf("failed to load demo dataset: %v", err)
	}
	if err := ds.Apply(ctx, store); err != nil {
		log.Fatalf("failed to seed store: %v", err)
	}
	log.Printf("✅ Seeded %d services.", len(ds.Services))

	catalog, err := i18n.Default()
	if err != nil {
		log.Fatalf("failed to load locales: %v", err)
	}
	application := app.New(store, catalog, notify.NewLogReporter(logger), logger)

	// 2. Navigate to a few services in different languages
	printer := detail.RendererFunc(func(ctx context.Context, vm detail.ViewModel) error {
		out, err := json.MarshalIndent(vm, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	})

	for _, nav := range []struct{ id, lang string }{
		{"7", "en"},
		{"7", "ar-LB"},
		{"8", "fr"},
		{"404", "en"},
	} {
		log.Printf("\n--- Service %s (%s) ---", nav.id, nav.lang)
		res := application.ServiceDetail(ctx, app.DetailRequest{ServiceID: nav.id, Lang: nav.lang, Renderer: printer})
		log.Printf("⭐ state=%s lang=%s", res.State, res.Lang)
	}

	log.Printf("\n--- %d notification(s) recorded ---", len(application.Recent.History()))
}
