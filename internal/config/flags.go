// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the configuration flags in args.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-u account base URL
//	-user account user name
//	-password account password
//	-token OAuth access token
//	-device-id device id
//	-protocol-version preferred protocol version
//	-collections comma separated collection ids
//	-d database DSN
//	-c/-config JSON or YAML config file path
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-rate-limit requests per second
//	-sync-interval sync interval (e.g., "5m")
//	-concurrency parallel collection syncs
//	-log-level log level
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-mail-sync", flag.ContinueOnError)

	var serverAddress NetAddress
	var accountURL, username, password, accessToken, deviceID, protocolVersion, collections string
	var databaseDSN, configPath, logLevel string
	var requestTimeout, syncInterval time.Duration
	var rateLimit float64
	var concurrency int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&accountURL, "u", "", "Account base URL")
	fs.StringVar(&username, "user", "", "Account user name")
	fs.StringVar(&password, "password", "", "Account password")
	fs.StringVar(&accessToken, "token", "", "OAuth access token")
	fs.StringVar(&deviceID, "device-id", "", "Device id")
	fs.StringVar(&protocolVersion, "protocol-version", "", "Preferred protocol version")
	fs.StringVar(&collections, "collections", "", "Comma separated collection ids")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&configPath, "c", "", "Config file path")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Float64Var(&rateLimit, "rate-limit", 0, "Requests per second")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Sync interval (e.g., 5m)")
	fs.IntVar(&concurrency, "concurrency", 0, "Parallel collection syncs")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var collectionIDs []string
	if collections != "" {
		for _, id := range strings.Split(collections, ",") {
			if id = strings.TrimSpace(id); id != "" {
				collectionIDs = append(collectionIDs, id)
			}
		}
	}

	return &StructuredConfig{
		Account: Account{
			URL:             accountURL,
			Username:        username,
			Password:        password,
			AccessToken:     accessToken,
			DeviceID:        deviceID,
			ProtocolVersion: protocolVersion,
			Collections:     collectionIDs,
		},
		Storage: Storage{DB: DB{DSN: databaseDSN}},
		Server:  Server{HTTPAddress: serverAddress.String(), RequestTimeout: requestTimeout},
		Adapter: Adapter{RequestTimeout: requestTimeout, RateLimit: rateLimit},
		Workers: Workers{SyncInterval: syncInterval, Concurrency: concurrency},
		Log:     Log{Level: logLevel},

		FilePath: configPath,
		Args:     fs.Args(),
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
