package handler

import (
	"github.com/MKhiriev/strobe/internal/config"
	"github.com/MKhiriev/strobe/internal/handler/http"
	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, logger),
	}, nil
}
