// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Defaults used when no source sets a value.
const (
	DefaultDeviceType      = "GoMailSync"
	DefaultProtocolVersion = "14.1"
	DefaultCollection      = "default"
	DefaultUserAgent       = "go-mail-sync"
	DefaultServerAddress   = "localhost:8080"
	DefaultLogLevel        = "info"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Account: Account{
			DeviceType:      DefaultDeviceType,
			ProtocolVersion: DefaultProtocolVersion,
			Collections:     []string{DefaultCollection},
		},
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			RequestTimeout: 30 * time.Second,
			RateLimit:      5,
			Burst:          1,
			MaxRedirects:   3,
			UserAgent:      DefaultUserAgent,
		},
		Workers: Workers{
			SyncInterval: 5 * time.Minute,
			Concurrency:  4,
		},
		Log: Log{Level: DefaultLogLevel},
	}
}
