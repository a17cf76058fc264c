// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// ServerConfig is the subset of the configuration the development server needs.
type ServerConfig struct {
	Server Server
	Log    Log
}

// GetServerConfig loads the configuration from the process arguments and
// environment and returns the validated server view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(programArgs())
	if err != nil {
		return nil, err
	}
	return cfg.ServerView()
}

// ServerView returns the validated server view of cfg.
func (cfg *StructuredConfig) ServerView() (*ServerConfig, error) {
	server := &ServerConfig{Server: cfg.Server, Log: cfg.Log}
	if err := server.validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}
	return server, nil
}
