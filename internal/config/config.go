package config

import (
	"os"
	"strings"

	"copra/internal/util"
)

const (
	clientTokenPrefix = "CLIENT_TOKEN_"
	clientAliasPrefix = "CLIENT_ALIAS_"
)

// Config is the process configuration shared by the trainer and the server.
// Everything comes from the environment; see .env.example for the full
// surface.
type Config struct {
	// Tokens maps an upper-cased client name to its static bearer token.
	Tokens map[string]string
	// Aliases maps a marketplace mnemonic to the canonical client name it
	// stands for. Clients without an alias resolve to themselves.
	Aliases map[string]string

	Bucket string

	MinSupport    float64
	MinConfidence float64
	TopN          int

	// TrainClients is the training allowlist; TrainWorkers bounds the
	// per-client fan-out.
	TrainClients []string
	TrainWorkers int
}

// FromEnv assembles the configuration from the process environment.
func FromEnv() *Config {
	cfg := &Config{
		Tokens:        make(map[string]string),
		Aliases:       make(map[string]string),
		Bucket:        util.GetEnvString("BUCKET_NAME", "copra"),
		MinSupport:    util.GetEnvFloat("MIN_SUPPORT", 0.05),
		MinConfidence: util.GetEnvFloat("MIN_CONFIDENCE", 0.6),
		TopN:          util.GetEnvInt("TOP_N", 5),
		TrainWorkers:  util.GetEnvInt("TRAIN_WORKERS", 6),
	}

	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(key, clientTokenPrefix):
			cfg.Tokens[strings.TrimPrefix(key, clientTokenPrefix)] = value
		case strings.HasPrefix(key, clientAliasPrefix):
			cfg.Aliases[strings.ToLower(strings.TrimPrefix(key, clientAliasPrefix))] = value
		}
	}

	for _, client := range strings.Split(util.GetEnv("TRAIN_CLIENTS"), ",") {
		client = strings.TrimSpace(client)
		if client != "" {
			cfg.TrainClients = append(cfg.TrainClients, client)
		}
	}

	return cfg
}

// ResolveClient maps a request's client mnemonic to the canonical client
// name. Unaliased names pass through unchanged.
func (c *Config) ResolveClient(mnemonic string) string {
	if canonical, ok := c.Aliases[strings.ToLower(mnemonic)]; ok {
		return canonical
	}
	return mnemonic
}

// TokenFor returns the configured bearer token for a canonical client name
// and whether the client is known at all.
func (c *Config) TokenFor(client string) (string, bool) {
	token, ok := c.Tokens[strings.ToUpper(client)]
	return token, ok
}
