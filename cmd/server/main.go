package main

import (
	"context"
	"fmt"

	"github.com/civicgrid/civicwatch/internal/adapter"
	"github.com/civicgrid/civicwatch/internal/config"
	myHTTP "github.com/civicgrid/civicwatch/internal/handler/http"
	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/server"
	"github.com/civicgrid/civicwatch/internal/service"
	"github.com/civicgrid/civicwatch/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("civicwatch-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	// Outbound integrations are optional: without a relay the complaint
	// feature is disabled, without a classifier photos go unvalidated.
	var relay adapter.EmailRelay
	if cfg.Adapter.RelayEndpoint != "" {
		if relay, err = adapter.NewEmailRelay(cfg.Adapter, log); err != nil {
			log.Fatal().Err(err).Msg("error creating email relay")
		}
	}

	var classifier adapter.ImageClassifier
	if cfg.Adapter.ClassifierEndpoint != "" {
		if classifier, err = adapter.NewImageClassifier(cfg.Adapter, log); err != nil {
			log.Fatal().Err(err).Msg("error creating image classifier")
		}
	}

	services := service.NewServices(storages, relay, classifier, *cfg, log)
	handler := myHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
