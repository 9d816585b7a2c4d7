package service

import (
	"fmt"

	"github.com/MKhiriev/strobe/internal/config"
	"github.com/MKhiriev/strobe/internal/crypto"
	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/store"
	"github.com/MKhiriev/strobe/models"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	MovieService   MovieService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, hasher crypto.PasswordHasher, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	authService, err := NewAuthService(storages.UserRepository, hasher, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:    authService,
		UserService:    NewUserService(storages.UserRepository, storages.MovieRepository, hasher, logger),
		MovieService:   NewMovieService(storages.MovieRepository, logger),
		AppInfoService: appInfoService,
	}, nil
}
