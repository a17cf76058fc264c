// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Duration is a time.Duration that decodes from strings like "30s" in both
// JSON and YAML files.
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

// UnmarshalYAML accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch value := v.(type) {
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(time.Duration(value))
	case int:
		*d = Duration(time.Duration(value))
	case nil:
		*d = 0
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

// fileConfig mirrors [StructuredConfig] with file-friendly field types.
type fileConfig struct {
	Account struct {
		URL             string   `json:"url" yaml:"url"`
		Username        string   `json:"username" yaml:"username"`
		Password        string   `json:"password" yaml:"password"`
		AccessToken     string   `json:"access_token" yaml:"access_token"`
		DeviceID        string   `json:"device_id" yaml:"device_id"`
		DeviceType      string   `json:"device_type" yaml:"device_type"`
		ProtocolVersion string   `json:"protocol_version" yaml:"protocol_version"`
		Collections     []string `json:"collections" yaml:"collections"`
	} `json:"account" yaml:"account"`
	Storage struct {
		DSN string `json:"dsn" yaml:"dsn"`
	} `json:"storage" yaml:"storage"`
	Server struct {
		Address        string   `json:"address" yaml:"address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		Username       string   `json:"username" yaml:"username"`
		Password       string   `json:"password" yaml:"password"`
		TokenSignKey   string   `json:"token_sign_key" yaml:"token_sign_key"`
	} `json:"server" yaml:"server"`
	Adapter struct {
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		RateLimit      float64  `json:"rate_limit" yaml:"rate_limit"`
		Burst          int      `json:"burst" yaml:"burst"`
		MaxRedirects   int      `json:"max_redirects" yaml:"max_redirects"`
		UserAgent      string   `json:"user_agent" yaml:"user_agent"`
	} `json:"adapter" yaml:"adapter"`
	Workers struct {
		SyncInterval Duration `json:"sync_interval" yaml:"sync_interval"`
		Concurrency  int      `json:"concurrency" yaml:"concurrency"`
	} `json:"workers" yaml:"workers"`
	Log struct {
		Level string `json:"level" yaml:"level"`
	} `json:"log" yaml:"log"`
}

// parseFile reads a JSON or YAML config file. The format is chosen by the
// extension: ".yaml" and ".yml" are YAML, everything else is JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		Account: Account{
			URL:             fc.Account.URL,
			Username:        fc.Account.Username,
			Password:        fc.Account.Password,
			AccessToken:     fc.Account.AccessToken,
			DeviceID:        fc.Account.DeviceID,
			DeviceType:      fc.Account.DeviceType,
			ProtocolVersion: fc.Account.ProtocolVersion,
			Collections:     fc.Account.Collections,
		},
		Storage: Storage{DB: DB{DSN: fc.Storage.DSN}},
		Server: Server{
			HTTPAddress:    fc.Server.Address,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
			Username:       fc.Server.Username,
			Password:       fc.Server.Password,
			TokenSignKey:   fc.Server.TokenSignKey,
		},
		Adapter: Adapter{
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
			RateLimit:      fc.Adapter.RateLimit,
			Burst:          fc.Adapter.Burst,
			MaxRedirects:   fc.Adapter.MaxRedirects,
			UserAgent:      fc.Adapter.UserAgent,
		},
		Workers: Workers{
			SyncInterval: time.Duration(fc.Workers.SyncInterval),
			Concurrency:  fc.Workers.Concurrency,
		},
		Log: Log{Level: fc.Log.Level},
	}
}
