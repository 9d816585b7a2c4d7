package http

import (
	"time"

	"github.com/MKhiriev/strobe/internal/config"
	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/service"
)

type Handler struct {
	services *service.Services

	requestTimeout time.Duration
	staticDir      string
	corsOrigins    []string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.RequestTimeout,
		staticDir:      cfg.StaticDir,
		corsOrigins:    cfg.CORSAllowedOrigins,
		logger:         logger,
	}
}
