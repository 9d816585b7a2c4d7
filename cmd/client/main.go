// Command client is a small command-line client of the strobe API.
//
// Usage:
//
//	client [flags] register
//	client [flags] movies
//	client [flags] movie <title>
//	client [flags] me
//	client [flags] favorite-add <movieID>
//	client [flags] favorite-remove <movieID>
//	client [flags] version
//
// Every command except register and version logs in first with -u/-p
// (or STROBE_USERNAME/STROBE_PASSWORD).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/strobe/internal/adapter"
	"github.com/MKhiriev/strobe/internal/config"
	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/models"
)

var errUsage = errors.New("usage: client [flags] register|movies|movie <title>|me|favorite-add <movieID>|favorite-remove <movieID>|version")

func main() {
	log := logger.NewConsoleLogger("strobe-client")

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	api, err := adapter.NewHTTPServerAdapter(cfg.ServerAddress, cfg.RequestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	result, err := run(context.Background(), api, cfg, args)
	if err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err = enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("error printing result")
	}
}

func run(ctx context.Context, api adapter.ServerAdapter, cfg *config.ClientConfig, args []string) (any, error) {
	if len(args) == 0 {
		return nil, errUsage
	}
	command, operands := args[0], args[1:]

	switch command {
	case "register":
		return api.Register(ctx, models.RegisterRequest{
			Username: cfg.Username,
			Password: cfg.Password,
			Email:    cfg.Email,
		})
	case "version":
		return api.ServerVersion(ctx)
	}

	if _, err := api.Login(ctx, models.Credentials{Username: cfg.Username, Password: cfg.Password}); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	switch {
	case command == "movies":
		return api.ListMovies(ctx)
	case command == "me":
		return api.GetUser(ctx, cfg.Username)
	case command == "movie" && len(operands) == 1:
		return api.GetMovie(ctx, operands[0])
	case command == "favorite-add" && len(operands) == 1:
		return api.AddFavoriteMovie(ctx, cfg.Username, operands[0])
	case command == "favorite-remove" && len(operands) == 1:
		return api.RemoveFavoriteMovie(ctx, cfg.Username, operands[0])
	default:
		return nil, errUsage
	}
}
