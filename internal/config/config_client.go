// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/google/uuid"
)

// ClientConfig is the subset of the configuration the sync client needs.
type ClientConfig struct {
	Account Account
	Storage Storage
	Adapter Adapter
	Workers Workers
	Log     Log

	// Args are the positional command-line arguments, the subcommand first.
	Args []string
}

// GetClientConfig loads the configuration from the process arguments and
// environment and returns the validated client view. An empty device id is
// replaced with a random one.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(programArgs())
	if err != nil {
		return nil, err
	}
	return cfg.Client()
}

// Client returns the validated client view of cfg.
func (cfg *StructuredConfig) Client() (*ClientConfig, error) {
	client := &ClientConfig{
		Account: cfg.Account,
		Storage: cfg.Storage,
		Adapter: cfg.Adapter,
		Workers: cfg.Workers,
		Log:     cfg.Log,
		Args:    cfg.Args,
	}
	if client.Account.DeviceID == "" {
		client.Account.DeviceID = newDeviceID()
	}

	if err := client.validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}
	return client, nil
}

// newDeviceID returns a device id made of 32 hex characters.
func newDeviceID() string {
	id := uuid.New()
	return fmt.Sprintf("%X", id[:])
}
