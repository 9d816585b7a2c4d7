package config

import (
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

const defaultClientTimeout = 10 * time.Second

// ClientConfig configures cmd/client, the command-line client of the API.
type ClientConfig struct {
	// ServerAddress is the base address of the strobe server.
	// Env: STROBE_ADDRESS
	ServerAddress string `env:"STROBE_ADDRESS"`

	// Username and Password are the login of the acting user.
	// Env: STROBE_USERNAME, STROBE_PASSWORD
	Username string `env:"STROBE_USERNAME"`
	Password string `env:"STROBE_PASSWORD"`

	// Email is only used by the register command.
	// Env: STROBE_EMAIL
	Email string `env:"STROBE_EMAIL"`

	// RequestTimeout bounds every API call.
	// Env: STROBE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"STROBE_REQUEST_TIMEOUT"`

	// LogLevel is the minimal level of emitted log entries.
	// Env: STROBE_LOG_LEVEL
	LogLevel string `env:"STROBE_LOG_LEVEL"`
}

// GetClientConfig merges environment variables, flags parsed from args and
// defaults, in that order of priority. Positional arguments left after the
// flags (the command and its operands) are returned as well.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	envCfg := &ClientConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, nil, err
	}

	flagsCfg, rest, err := parseClientFlags(args)
	if err != nil {
		return nil, nil, err
	}

	cfg := new(ClientConfig)
	for _, src := range []*ClientConfig{envCfg, flagsCfg, defaultClientConfig()} {
		if err = mergo.Merge(cfg, src); err != nil {
			return nil, nil, fmt.Errorf("error merging client configs: %w", err)
		}
	}

	return cfg, rest, nil
}

func parseClientFlags(args []string) (*ClientConfig, []string, error) {
	fs := flag.NewFlagSet("strobe-client", flag.ContinueOnError)

	cfg := &ClientConfig{}
	fs.StringVar(&cfg.ServerAddress, "a", "", "Server address")
	fs.StringVar(&cfg.Username, "u", "", "Username")
	fs.StringVar(&cfg.Password, "p", "", "Password")
	fs.StringVar(&cfg.Email, "e", "", "Email (register only)")
	fs.DurationVar(&cfg.RequestTimeout, "t", 0, "Request timeout (e.g., 10s)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Minimal log level")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return cfg, fs.Args(), nil
}

func defaultClientConfig() *ClientConfig {
	return &ClientConfig{
		ServerAddress:  defaultHTTPAddress,
		RequestTimeout: defaultClientTimeout,
		LogLevel:       defaultLogLevel,
	}
}
