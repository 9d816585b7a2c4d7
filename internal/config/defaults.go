package config

import (
	"runtime"
	"time"
)

const (
	defaultTokenIssuer      = "strobe"
	defaultTokenDuration    = 7 * 24 * time.Hour
	defaultPasswordHashCost = 10
	defaultHTTPAddress      = "localhost:8080"
	defaultRequestTimeout   = 30 * time.Second
	defaultStaticDir        = "public"
	defaultLogLevel         = "info"
)

var defaultCORSAllowedOrigins = []string{"*"}

// defaultConfig returns the values used for every field no other source sets.
// The signing key and the DSN have no defaults.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      defaultTokenIssuer,
			TokenDuration:    defaultTokenDuration,
			PasswordHashCost: defaultPasswordHashCost,
			HashWorkers:      runtime.NumCPU(),
			LogLevel:         defaultLogLevel,
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
			StaticDir:      defaultStaticDir,

			CORSAllowedOrigins: defaultCORSAllowedOrigins,
		},
	}
}
