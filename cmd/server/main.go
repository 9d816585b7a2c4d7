package main

import (
	"context"

	"github.com/MKhiriev/strobe/internal/config"
	"github.com/MKhiriev/strobe/internal/crypto"
	"github.com/MKhiriev/strobe/internal/handler"
	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/server"
	"github.com/MKhiriev/strobe/internal/service"
	"github.com/MKhiriev/strobe/internal/store"
	"github.com/MKhiriev/strobe/internal/workers"
	"github.com/MKhiriev/strobe/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewLogger("strobe-server")
	log.Info().Str("build", buildInfo.String()).Msg("starting")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	hasher, err := crypto.NewBcryptHasher(cfg.App.PasswordHashCost, workers.NewPool(cfg.App.HashWorkers))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating password hasher")
	}

	services, err := service.NewServices(storages, hasher, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
