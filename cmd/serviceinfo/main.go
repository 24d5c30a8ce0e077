package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub/v2"
	"github.com/illmade-knight/service-info/app"
	"github.com/illmade-knight/service-info/internal/clients"
	"github.com/illmade-knight/service-info/internal/config"
	"github.com/illmade-knight/service-info/internal/logging"
	"github.com/illmade-knight/service-info/internal/notify/pubsubnotify"
	"github.com/illmade-knight/service-info/internal/seed"
	firestorestorage "github.com/illmade-knight/service-info/internal/storage/firestore"
	"github.com/illmade-knight/service-info/internal/web"
	"github.com/illmade-knight/service-info/pkg/i18n"
	"github.com/illmade-knight/service-info/pkg/notify"
	"github.com/illmade-knight/service-info/pkg/services"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	seedOnly := flag.Bool("seed", false, "Write the demo dataset to the configured store and exit")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *seedOnly, logger); err != nil {
		logger.Error().Err(err).Msg("Service-info exited with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, seedOnly bool, logger zerolog.Logger) error {
	// 2. Instantiate the Data Source
	reader, store, closeSource, err := newSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	if seedOnly || cfg.Source.Kind == config.SourceMemory {
		if store == nil {
			return fmt.Errorf("source kind %q cannot be seeded", cfg.Source.Kind)
		}
		ds, err := seed.Demo()
		if err != nil {
			return err
		}
		if err := ds.Apply(ctx, store); err != nil {
			return err
		}
		logger.Info().Int("services", len(ds.Services)).Str("source", cfg.Source.Kind).Msg("Demo dataset written")
		if seedOnly {
			return nil
		}
	}

	// 3. Instantiate the Notification Channel
	reporters := notify.Multi{notify.NewLogReporter(logger)}
	if cfg.PubSub.Enabled() {
		psClient, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID)
		if err != nil {
			return fmt.Errorf("failed to create pubsub client: %w", err)
		}
		defer psClient.Close()
		publisher := pubsubnotify.NewReporter(psClient, cfg.PubSub.Topic, logger)
		defer publisher.Stop()
		reporters = append(reporters, publisher)
		logger.Info().Str("topic", cfg.PubSub.Topic).Msg("Publishing notifications to Pub/Sub")
	}

	// 4. Load Locales
	catalog, err := newCatalog(cfg.I18n)
	if err != nil {
		return err
	}
	logger.Info().Strs("languages", catalog.Languages()).Msg("Locales loaded")

	// 5. Instantiate the Main Application Orchestrator and its HTTP surface
	application := app.New(reader, catalog, reporters, logger)
	handler, err := web.NewHandler(application, application.Recent, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: handler}
	return web.Serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// newSource returns the configured reader. store is nil when the source is read-only.
func newSource(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (services.Reader, services.Store, func(), error) {
	switch cfg.Source.Kind {
	case config.SourceAPI:
		opts := []clients.Option{clients.WithHTTPClient(&http.Client{Timeout: cfg.Source.Timeout})}
		if cfg.Source.Token != "" {
			opts = append(opts, clients.WithToken(cfg.Source.Token))
		}
		client := clients.NewServiceInfoClient(cfg.Source.BaseURL, logger, opts...)
		logger.Info().Str("base_url", cfg.Source.BaseURL).Msg("Reading services from the REST API")
		return client, nil, func() {}, nil

	case config.SourceFirestore:
		fsClient, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		store := firestorestorage.NewServicesStore(fsClient)
		logger.Info().Str("project_id", cfg.Firestore.ProjectID).Msg("Reading services from Firestore")
		return store, store, func() { _ = fsClient.Close() }, nil

	default:
		store := services.NewInMemoryStore()
		return store, store, func() {}, nil
	}
}

func newCatalog(cfg config.I18nConfig) (*i18n.Catalog, error) {
	if cfg.LocalesDir == "" {
		return i18n.Embedded(cfg.DefaultLanguage)
	}
	return i18n.Load(os.DirFS(cfg.LocalesDir), ".", cfg.DefaultLanguage)
}
