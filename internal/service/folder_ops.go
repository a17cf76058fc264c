// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/protocol"
	"github.com/MKhiriev/go-mail-sync/internal/wbxml"
	"github.com/MKhiriev/go-mail-sync/models"
)

func (s *folderSyncService) CreateFolder(ctx context.Context, collectionID, parentID, name string, typ models.FolderType) (models.Folder, error) {
	if name == "" {
		return models.Folder{}, ErrNoFolderName
	}
	if parentID == "" {
		parentID = models.RootParentID
	}

	var created models.Folder
	err := s.folderOp(ctx, collectionID, protocol.CmdFolderCreate,
		func(current models.Hierarchy) (*wbxml.Node, error) {
			return protocol.BuildFolderCreateRequest(s.tbl, current.Token, parentID, name, typ)
		},
		func(_ models.Hierarchy, resp protocol.FolderOpResponse) (models.FolderDelta, error) {
			created = models.Folder{
				ServerID:    resp.ServerID,
				ParentID:    parentID,
				DisplayName: name,
				Type:        typ,
			}
			return models.FolderDelta{Added: []models.Folder{created}}, nil
		})
	if err != nil {
		return models.Folder{}, err
	}
	return created, nil
}

func (s *folderSyncService) DeleteFolder(ctx context.Context, collectionID, serverID string) error {
	if serverID == "" {
		return ErrNoServerID
	}
	return s.folderOp(ctx, collectionID, protocol.CmdFolderDelete,
		func(current models.Hierarchy) (*wbxml.Node, error) {
			return protocol.BuildFolderDeleteRequest(s.tbl, current.Token, serverID)
		},
		func(current models.Hierarchy, _ protocol.FolderOpResponse) (models.FolderDelta, error) {
			if !current.Folders.Contains(serverID) {
				return models.FolderDelta{}, nil
			}
			return models.FolderDelta{Deleted: []string{serverID}}, nil
		})
}

func (s *folderSyncService) UpdateFolder(ctx context.Context, collectionID, serverID, parentID, name string) (models.Folder, error) {
	switch {
	case serverID == "":
		return models.Folder{}, ErrNoServerID
	case name == "":
		return models.Folder{}, ErrNoFolderName
	}
	if parentID == "" {
		parentID = models.RootParentID
	}

	var updated models.Folder
	err := s.folderOp(ctx, collectionID, protocol.CmdFolderUpdate,
		func(current models.Hierarchy) (*wbxml.Node, error) {
			existing, ok := current.Folders.Get(serverID)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownFolder, serverID)
			}
			updated = existing
			updated.ParentID = parentID
			updated.DisplayName = name
			return protocol.BuildFolderUpdateRequest(s.tbl, current.Token, serverID, parentID, name)
		},
		func(models.Hierarchy, protocol.FolderOpResponse) (models.FolderDelta, error) {
			return models.FolderDelta{Updated: []models.Folder{updated}}, nil
		})
	if err != nil {
		return models.Folder{}, err
	}
	return updated, nil
}

// folderOp runs one mutating folder command: build the request against the
// committed hierarchy, send it and, on Success, commit the resulting delta
// together with the new SyncKey.
func (s *folderSyncService) folderOp(
	ctx context.Context,
	collectionID, command string,
	build func(models.Hierarchy) (*wbxml.Node, error),
	delta func(models.Hierarchy, protocol.FolderOpResponse) (models.FolderDelta, error),
) error {
	release, err := s.begin(collectionID)
	if err != nil {
		return err
	}
	defer release()

	log := s.logger.ForCollection(collectionID)
	prev := s.State(collectionID)

	err = s.runFolderOp(ctx, collectionID, command, build, delta, log)
	if err != nil {
		log.Err(err).Str(logger.FieldCommand, command).Msg("folder operation failed")
	}
	// a rejected folder op does not break the hierarchy sync state
	s.setState(collectionID, prev)
	return err
}

func (s *folderSyncService) runFolderOp(
	ctx context.Context,
	collectionID, command string,
	build func(models.Hierarchy) (*wbxml.Node, error),
	delta func(models.Hierarchy, protocol.FolderOpResponse) (models.FolderDelta, error),
	log *logger.Logger,
) error {
	current, err := s.repo.LoadHierarchy(ctx, collectionID)
	if err != nil {
		return fmt.Errorf("load hierarchy: %w", err)
	}

	req, err := build(current)
	if err != nil {
		return err
	}

	s.setState(collectionID, models.SyncStateAwaitingResponse)
	root, err := s.roundTrip(ctx, command, req)
	if err != nil {
		return err
	}
	resp, err := protocol.ParseFolderOpResponse(s.tbl, command, root)
	if err != nil {
		return err
	}

	switch protocol.ClassifyFolderStatus(resp.Status) {
	case protocol.DispositionSuccess:
	case protocol.DispositionResync:
		// next Sync starts from a snapshot; the caller retries afterwards
		if err := s.resetToken(ctx, current); err != nil {
			return err
		}
		rej := protocol.FolderRejection(command, resp.RawStatus, resp.Status)
		rej.NeedsFolderSync = true
		return rej
	default:
		return s.reject(log, command, resp.RawStatus, resp.Status)
	}

	s.setState(collectionID, models.SyncStateApplying)
	d, err := delta(current, resp)
	if err != nil {
		return err
	}
	next, err := current.Folders.Apply(d)
	if err != nil {
		return fmt.Errorf("%w: %w", protocol.ErrMalformedResponse, err)
	}

	if err := s.commit(ctx, current, models.Hierarchy{
		CollectionID: current.CollectionID,
		Token:        resp.SyncKey,
		Folders:      next,
	}); err != nil {
		return err
	}

	log.Info().
		Str(logger.FieldCommand, command).
		Str(logger.FieldSyncKey, resp.SyncKey.String()).
		Msg("folder operation committed")
	return nil
}
