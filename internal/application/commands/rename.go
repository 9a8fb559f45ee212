package commands

import (
	"context"
	"fmt"
	"strings"

	"shelfmark/internal/application"
	"shelfmark/internal/domain"
	"shelfmark/internal/ports"
)

// RenameResult contains the result of a rename operation
type RenameResult struct {
	FolderID string
	NewName  string
	Changed  bool
	Message  string
}

// RenameFolderCommand renames a folder
type RenameFolderCommand struct {
	store   ports.BookmarkStore
	ID      string
	NewName string
}

// NewRenameFolderCommand creates a new RenameFolderCommand
func NewRenameFolderCommand(store ports.BookmarkStore, id, newName string) *RenameFolderCommand {
	return &RenameFolderCommand{
		store:   store,
		ID:      id,
		NewName: newName,
	}
}

// Validate checks if the rename operation is valid
func (c *RenameFolderCommand) Validate() error {
	if err := application.ValidateRequired("folderID", c.ID); err != nil {
		return err
	}
	if err := application.ValidateRequired("name", c.NewName); err != nil {
		return err
	}
	return application.ValidateNotBuiltin("folderID", c.ID)
}

// Execute runs the rename command. The displayed name is refreshed by the
// next reconciliation, not by the caller.
func (c *RenameFolderCommand) Execute(ctx context.Context) (*RenameResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	newName := strings.TrimSpace(c.NewName)

	folder, err := c.store.Get(ctx, c.ID)
	if err != nil {
		return nil, &application.StoreError{Op: "get", ID: c.ID, Err: err}
	}
	if err := application.ValidateKind("folderID", folder, domain.KindFolder); err != nil {
		return nil, err
	}

	if folder.Title == newName {
		return &RenameResult{
			FolderID: c.ID,
			NewName:  newName,
			Message:  fmt.Sprintf("%s is already named %s", c.ID, newName),
		}, nil
	}

	if _, err := c.store.Update(ctx, c.ID, domain.UpdateProps{Title: &newName}); err != nil {
		return nil, &application.StoreError{Op: "update", ID: c.ID, Err: err}
	}

	return &RenameResult{
		FolderID: c.ID,
		NewName:  newName,
		Changed:  true,
		Message:  fmt.Sprintf("Renamed %s to %s", folder.Title, newName),
	}, nil
}
