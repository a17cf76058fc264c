// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command client keeps the folder hierarchy of an ActiveSync mailbox in a
// local database and searches the mailbox.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/MKhiriev/go-mail-sync/internal/client"
	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/service"
	"github.com/MKhiriev/go-mail-sync/internal/store"
	"github.com/MKhiriev/go-mail-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, client.ErrUsage) || errors.Is(err, client.ErrUnknownCommand) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	log := logger.NewClientLogger("go-mail-sync-client", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("create local storage: %w", err)
	}
	defer storages.Close()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Account, cfg.Adapter, log)
	if err != nil {
		return fmt.Errorf("create server adapter: %w", err)
	}

	services := service.NewClientServices(codepage.Default(), serverAdapter, storages.HierarchyRepository, cfg, log)

	app, err := client.NewApp(services, serverAdapter, cfg.Account.Collections[0],
		models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), os.Stdout, log)
	if err != nil {
		return fmt.Errorf("init client app: %w", err)
	}

	return app.Run(ctx, cfg.Args)
}
