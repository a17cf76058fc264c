// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/MKhiriev/go-mail-sync/models"
)

const defaultSearchPage = 10

func (a *App) sync(ctx context.Context, args []string) error {
	fs := a.flagSet("sync")
	collection := a.collectionFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	out, err := a.services.FolderSyncService.Sync(ctx, *collection)
	if err != nil {
		return err
	}

	switch {
	case !out.Applied:
		fmt.Fprintf(a.out, "%s: up to date at sync key %s\n", *collection, out.Token)
	default:
		fmt.Fprintf(a.out, "%s: sync key %s, %d added, %d updated, %d deleted\n",
			*collection, out.Token, len(out.Delta.Added), len(out.Delta.Updated), len(out.Delta.Deleted))
	}
	if out.Recovered {
		fmt.Fprintln(a.out, "sync key was rejected by the server; hierarchy was resynced from scratch")
	}
	return nil
}

func (a *App) folders(ctx context.Context, args []string) error {
	fs := a.flagSet("folders")
	collection := a.collectionFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	h, err := a.services.FolderSyncService.Folders(ctx, *collection)
	if err != nil {
		return err
	}
	if h.Token.IsInitial() {
		fmt.Fprintf(a.out, "%s has not been synced yet\n", *collection)
		return nil
	}

	type row struct {
		folder models.Folder
		path   string
	}
	rows := make([]row, 0, h.Folders.Len())
	for _, f := range h.Folders.All() {
		path, _ := h.Folders.Path(f.ServerID)
		rows = append(rows, row{folder: f, path: path})
	}
	slices.SortFunc(rows, func(x, y row) int {
		return strings.Compare(x.path, y.path)
	})

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATH\tTYPE\tROLE")
	for _, r := range rows {
		role := r.folder.Role(h.Folders.Depth(r.folder.ServerID))
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.folder.ServerID, r.path, r.folder.Type, role)
	}
	fmt.Fprintf(tw, "\nsync key %s\n", h.Token)
	return tw.Flush()
}

func (a *App) search(ctx context.Context, args []string) error {
	fs := a.flagSet("search")
	limit := fs.Int("limit", 0, "stop after this many matches, 0 for all")
	page := fs.Int("page", defaultSearchPage, "matches requested per round trip")
	folder := fs.String("folder", "", "restrict the search to this folder id")
	deep := fs.Bool("deep", false, "include subfolders of -folder")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" || *page <= 0 {
		fs.Usage()
		return ErrUsage
	}

	var predicate models.Predicate = models.FreeText{Text: text}
	if *folder != "" {
		predicate = models.And{Terms: []models.Predicate{
			models.EqualTo{Field: "AirSync:CollectionId", Value: *folder},
			predicate,
		}}
	}

	matches, err := a.services.SearchService.SearchAll(ctx, models.SearchQuery{
		Store:          models.StoreMailbox,
		Predicate:      predicate,
		Range:          models.SearchRange{Offset: 0, Count: *page},
		RebuildResults: true,
		DeepTraversal:  *deep,
	}, *limit)
	if err != nil && len(matches) == 0 {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RECEIVED\tFROM\tSUBJECT\tFOLDER\tID")
	for _, m := range matches {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			m.Properties["DateReceived"], m.Properties["From"], m.Properties["Subject"], m.CollectionID, m.LongID)
	}
	fmt.Fprintf(tw, "\n%d matches\n", len(matches))
	if flushErr := tw.Flush(); flushErr != nil {
		return flushErr
	}
	// a failed later page still leaves the earlier matches worth printing
	return err
}

func (a *App) mkdir(ctx context.Context, args []string) error {
	fs := a.flagSet("mkdir")
	collection := a.collectionFlag(fs)
	parent := fs.String("parent", models.RootParentID, "parent folder id")
	kind := fs.Uint("type", uint(models.FolderKindMail), "folder type number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return ErrUsage
	}

	typ := models.ParseFolderType(strconv.FormatUint(uint64(*kind), 10))
	f, err := a.services.FolderSyncService.CreateFolder(ctx, *collection, *parent, fs.Arg(0), typ)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created %s (%s) under %s\n", f.ServerID, f.DisplayName, f.ParentID)
	return nil
}

func (a *App) rmdir(ctx context.Context, args []string) error {
	fs := a.flagSet("rmdir")
	collection := a.collectionFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return ErrUsage
	}

	if err := a.services.FolderSyncService.DeleteFolder(ctx, *collection, fs.Arg(0)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %s\n", fs.Arg(0))
	return nil
}

// rename keeps the folder's parent unless -parent is given.
func (a *App) rename(ctx context.Context, args []string) error {
	fs := a.flagSet("rename")
	collection := a.collectionFlag(fs)
	parent := fs.String("parent", "", "new parent folder id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return ErrUsage
	}
	serverID, name := fs.Arg(0), fs.Arg(1)

	if *parent == "" {
		h, err := a.services.FolderSyncService.Folders(ctx, *collection)
		if err != nil {
			return err
		}
		if f, ok := h.Folders.Get(serverID); ok {
			*parent = f.ParentID
		}
	}

	f, err := a.services.FolderSyncService.UpdateFolder(ctx, *collection, serverID, *parent, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "updated %s: %s under %s\n", f.ServerID, f.DisplayName, f.ParentID)
	return nil
}
