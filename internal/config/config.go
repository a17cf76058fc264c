// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging environment variables,
// command-line flags, an optional config file and defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Account identifies the mailbox and the device talking to it.
	Account Account `envPrefix:"ACCOUNT_"`

	// Storage holds the database the folder hierarchy is persisted in.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds settings of the development ActiveSync server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings of the outbound HTTP transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds settings of the background sync job.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`

	// Args are the positional arguments left after the flags.
	Args []string
}

// Account describes the remote mailbox.
type Account struct {
	// URL is the server base URL; the ActiveSync path is appended to it.
	// Env: ACCOUNT_URL
	URL string `env:"URL"`

	// Username is sent in the User query parameter and for basic auth.
	// Env: ACCOUNT_USERNAME
	Username string `env:"USERNAME"`

	// Password is used for basic auth when AccessToken is empty.
	// Env: ACCOUNT_PASSWORD
	Password string `env:"PASSWORD"`

	// AccessToken is an OAuth bearer token. It takes precedence over Password.
	// Env: ACCOUNT_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`

	// DeviceID identifies this client to the server. A random one is
	// generated when empty.
	// Env: ACCOUNT_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// DeviceType is sent in the DeviceType query parameter.
	// Env: ACCOUNT_DEVICE_TYPE
	DeviceType string `env:"DEVICE_TYPE"`

	// ProtocolVersion is the preferred MS-ASProtocolVersion.
	// Env: ACCOUNT_PROTOCOL_VERSION
	ProtocolVersion string `env:"PROTOCOL_VERSION"`

	// Collections lists the collection ids whose hierarchy is kept in sync.
	// Env: ACCOUNT_COLLECTIONS (comma separated)
	Collections []string `env:"COLLECTIONS" envSeparator:","`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the backend: "postgres://…" opens PostgreSQL, anything
	// else is treated as a SQLite path or "file:" URI.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds settings of the development ActiveSync server.
type Server struct {
	// HTTPAddress is the address the server listens on, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds handling of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Username and Password are the basic-auth credentials the server accepts.
	// Env: SERVER_USERNAME, SERVER_PASSWORD
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	// TokenSignKey enables bearer authentication with HS256 tokens signed by
	// this key. Bearer tokens are refused when it is empty.
	// Env: SERVER_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`
}

// Adapter holds settings of the outbound HTTP transport.
type Adapter struct {
	// RequestTimeout is the timeout of a single HTTP exchange.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit is the number of requests per second the client may send.
	// Env: ADAPTER_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`

	// Burst is the number of requests that may be sent at once.
	// Env: ADAPTER_BURST
	Burst int `env:"BURST"`

	// MaxRedirects bounds how many 451 redirects are followed per request.
	// Env: ADAPTER_MAX_REDIRECTS
	MaxRedirects int `env:"MAX_REDIRECTS"`

	// UserAgent is sent in the User-Agent header.
	// Env: ADAPTER_USER_AGENT
	UserAgent string `env:"USER_AGENT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is how often every collection is synced.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// Concurrency bounds how many collections sync at the same time.
	// Env: WORKERS_CONCURRENCY
	Concurrency int `env:"CONCURRENCY"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// GetStructuredConfig loads and merges the configuration from all sources
// for the given command-line arguments (without the program name).
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(".env").
		withEnv().
		withFlags(args).
		withFile().
		withDefaults().
		build()
}

// programArgs returns the command-line arguments without the program name.
func programArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}
