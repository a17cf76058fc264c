// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/protocol"
	"github.com/MKhiriev/go-mail-sync/internal/service"
	"github.com/MKhiriev/go-mail-sync/internal/workers"
	"github.com/MKhiriev/go-mail-sync/models"
)

type command struct {
	requires []string
	run      func(a *App, ctx context.Context, args []string) error
}

// usages lives outside commands so the run funcs can print it without an
// initialization cycle.
var usages = map[string]string{
	"sync":    "sync [-collection id]",
	"folders": "folders [-collection id]",
	"search":  "search [-limit n] [-page n] [-folder id] [-deep] text...",
	"mkdir":   "mkdir [-collection id] [-parent id] [-type n] name",
	"rmdir":   "rmdir [-collection id] serverId",
	"rename":  "rename [-collection id] [-parent id] serverId name",
	"daemon":  "daemon",
	"version": "version",
}

var commands = map[string]command{
	"sync": {
		requires: []string{protocol.CmdFolderSync},
		run:      (*App).sync,
	},
	"folders": {
		run: (*App).folders,
	},
	"search": {
		requires: []string{protocol.CmdSearch},
		run:      (*App).search,
	},
	"mkdir": {
		requires: []string{protocol.CmdFolderCreate},
		run:      (*App).mkdir,
	},
	"rmdir": {
		requires: []string{protocol.CmdFolderDelete},
		run:      (*App).rmdir,
	},
	"rename": {
		requires: []string{protocol.CmdFolderUpdate},
		run:      (*App).rename,
	},
	"daemon": {
		requires: []string{protocol.CmdFolderSync},
		run:      (*App).daemon,
	},
	"version": {
		run: (*App).version,
	},
}

// App runs client subcommands.
type App struct {
	services  *service.ClientServices
	server    adapter.ServerAdapter
	collection string
	build     models.AppBuildInfo
	out       io.Writer

	logger *logger.Logger
}

// NewApp returns an App. defaultCollection is used by subcommands that are
// not given -collection.
func NewApp(services *service.ClientServices, server adapter.ServerAdapter, defaultCollection string, build models.AppBuildInfo, out io.Writer, logger *logger.Logger) (*App, error) {
	if services == nil || server == nil {
		return nil, errors.New("client app needs services and a server adapter")
	}
	return &App{
		services:  services,
		server:    server,
		collection: defaultCollection,
		build:     build,
		out:       out,
		logger:    logger,
	}, nil
}

// Run implements [Client]. The server is only contacted for subcommands that
// need it; their commands must be announced by OPTIONS.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	name, rest := args[0], args[1:]
	cmd, ok := commands[name]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	if len(cmd.requires) > 0 {
		version, err := a.server.Connect(ctx, cmd.requires...)
		if err != nil {
			return err
		}
		a.logger.Debug().Str("protocol_version", version).Str("command", name).Msg("running command")
	}

	if err := cmd.run(a, ctx, rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (a *App) usage() {
	names := make([]string, 0, len(usages))
	for name := range usages {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "usage: go-mail-sync [flags] <command>")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %s\n", usages[name])
	}
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.Usage = func() {
		fmt.Fprintf(a.out, "usage: %s\n", usages[name])
		fs.PrintDefaults()
	}
	return fs
}

func (a *App) collectionFlag(fs *flag.FlagSet) *string {
	return fs.String("collection", a.collection, "collection id")
}

func (a *App) daemon(ctx context.Context, _ []string) error {
	return workers.New(a.services.SyncJob).Run(ctx)
}

func (a *App) version(context.Context, []string) error {
	fmt.Fprintf(a.out, "Build version: %s\n", orNA(a.build.BuildVersion()))
	fmt.Fprintf(a.out, "Build date: %s\n", orNA(a.build.BuildDate()))
	fmt.Fprintf(a.out, "Build commit: %s\n", orNA(a.build.BuildCommit()))
	return nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
