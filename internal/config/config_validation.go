// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"

	"github.com/rs/zerolog"
)

func (cfg *ClientConfig) validate() error {
	if !validURL(cfg.Account.URL) || cfg.Account.Username == "" ||
		(cfg.Account.Password == "" && cfg.Account.AccessToken == "") ||
		len(cfg.Account.Collections) == 0 {
		return ErrInvalidAccountConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.RateLimit <= 0 ||
		cfg.Adapter.Burst <= 0 || cfg.Adapter.MaxRedirects < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.Concurrency <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return validateLog(cfg.Log)
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 ||
		cfg.Server.Username == "" || cfg.Server.Password == "" {
		return ErrInvalidServerConfigs
	}

	return validateLog(cfg.Log)
}

func validateLog(l Log) error {
	if _, err := zerolog.ParseLevel(l.Level); err != nil {
		return ErrInvalidLogConfigs
	}
	return nil
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
