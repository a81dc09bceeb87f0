// Package config resolves the listen address from flags, environment
// variables and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 8000

	// EnvFile is loaded from the working directory when present.
	EnvFile = ".env"
)

// ErrInvalidPort is returned when a port is not an integer in 1..65535.
var ErrInvalidPort = errors.New("invalid port")

// Config holds the process settings.
type Config struct {
	Host string
	Port int
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Load resolves the configuration with precedence flag > env > .env > default.
// args excludes the program name.
func Load(args []string) (Config, error) {
	return load(EnvFile, args)
}

func load(envFile string, args []string) (Config, error) {
	// godotenv never overrides variables already present in the environment.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	host := envOr("HOST", DefaultHost)
	rawPort := envOr("PORT", strconv.Itoa(DefaultPort))

	// Validated after flags so -port overrides PORT.
	flags := flag.NewFlagSet("server", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.StringVar(&host, "host", host, "interface to bind")
	flags.StringVar(&rawPort, "port", rawPort, "TCP port to listen on")
	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	port, err := parsePort(rawPort)
	if err != nil {
		return Config{}, fmt.Errorf("port: %w", err)
	}

	return Config{Host: strings.TrimSpace(host), Port: port}, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, raw)
	}
	return port, nil
}
