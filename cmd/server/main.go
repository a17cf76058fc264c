// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command server runs an in-memory ActiveSync server for development and
// end-to-end testing of the sync client.
package main

import (
	"fmt"

	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/handler"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/mailbox"
	"github.com/MKhiriev/go-mail-sync/internal/server"
	"github.com/MKhiriev/go-mail-sync/internal/utils"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const demoMessages = 25

func main() {
	printBuildInfo()

	cfg, err := config.GetServerConfig()
	if err != nil {
		logger.NewLogger("go-mail-sync-server", config.DefaultLogLevel).Fatal().Err(err).Msg("error getting configs")
	}
	log := logger.NewLogger("go-mail-sync-server", cfg.Log.Level)

	mb := mailbox.NewDefault(utils.NewUUIDGenerator())
	if err = mb.SeedDemo(demoMessages); err != nil {
		log.Fatal().Err(err).Msg("error seeding mailbox")
	}

	handlers, err := handler.NewHandlers(mb, codepage.Default(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
