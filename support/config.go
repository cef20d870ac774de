package support

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Transport string

const (
	StdioTransport Transport = "stdio"
	HTTPTransport  Transport = "http"
)

type Tracing string

const (
	NoTracing        Tracing = "none"
	ConsoleTracing   Tracing = "console"
	JaegerTracing    Tracing = "jaeger"
	HoneycombTracing Tracing = "honeycomb"
)

const (
	DefaultAddress        = ":9080"
	DefaultJaegerEndpoint = "http://localhost:14268/api/traces"
)

type Config struct {
	Transport        Transport
	Address          string
	Tracing          Tracing
	JaegerEndpoint   string
	HoneycombTeam    string
	HoneycombDataset string
	LogLevel         zerolog.Level
}

func LoadConfig() (Config, error) {
	return ConfigFrom(os.Getenv)
}

// ConfigFrom reads the configuration through getenv, applying defaults for unset
// variables.
func ConfigFrom(getenv func(key string) string) (Config, error) {
	value := func(key string, fallback string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}

	config := Config{
		Transport:        Transport(strings.ToLower(value("WEE_COUNTER_TRANSPORT", string(StdioTransport)))),
		Address:          value("WEE_COUNTER_ADDRESS", DefaultAddress),
		Tracing:          Tracing(strings.ToLower(value("WEE_COUNTER_TRACING", string(NoTracing)))),
		JaegerEndpoint:   value("JAEGER_ENDPOINT", DefaultJaegerEndpoint),
		HoneycombTeam:    value("HONEYCOMB_TEAM", ""),
		HoneycombDataset: value("HONEYCOMB_DATASET", ""),
	}

	switch config.Transport {
	case StdioTransport, HTTPTransport:
	default:
		return Config{}, errors.Errorf("WEE_COUNTER_TRANSPORT must be stdio or http, got %q", config.Transport)
	}

	switch config.Tracing {
	case NoTracing, ConsoleTracing, JaegerTracing:
	case HoneycombTracing:
		if config.HoneycombTeam == "" || config.HoneycombDataset == "" {
			return Config{}, errors.New("HONEYCOMB_TEAM and HONEYCOMB_DATASET are required for honeycomb tracing")
		}
	default:
		return Config{}, errors.Errorf("WEE_COUNTER_TRACING must be none, console, jaeger or honeycomb, got %q", config.Tracing)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(value("WEE_COUNTER_LOG_LEVEL", "info")))
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid WEE_COUNTER_LOG_LEVEL")
	}
	config.LogLevel = level

	return config, nil
}
