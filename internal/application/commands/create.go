package commands

import (
	"context"
	"fmt"
	"strings"

	"shelfmark/internal/application"
	"shelfmark/internal/domain"
	"shelfmark/internal/ports"
)

// CreateFolderResult contains the result of creating a folder
type CreateFolderResult struct {
	Folder  *domain.Node
	Message string
}

// CreateFolderCommand creates a folder in a container
type CreateFolderCommand struct {
	store    ports.BookmarkStore
	Name     string
	ParentID string
}

// NewCreateFolderCommand creates a new CreateFolderCommand
func NewCreateFolderCommand(store ports.BookmarkStore, name, parentID string) *CreateFolderCommand {
	return &CreateFolderCommand{
		store:    store,
		Name:     name,
		ParentID: parentID,
	}
}

// Validate checks if the create operation is valid
func (c *CreateFolderCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}
	return application.ValidateRequired("folderID", c.ParentID)
}

// Execute runs the create folder command
func (c *CreateFolderCommand) Execute(ctx context.Context) (*CreateFolderResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	folder, err := c.store.Create(ctx, domain.CreateProps{
		ParentID: c.ParentID,
		Kind:     domain.KindFolder,
		Title:    strings.TrimSpace(c.Name),
	})
	if err != nil {
		return nil, &application.StoreError{Op: "create", ID: c.ParentID, Err: err}
	}

	return &CreateFolderResult{
		Folder:  folder,
		Message: fmt.Sprintf("Created folder: %s", folder.Title),
	}, nil
}

// AddItemResult contains the result of adding a bookmark
type AddItemResult struct {
	Item    *domain.Node
	Message string
}

// AddItemCommand adds a bookmark to a folder
type AddItemCommand struct {
	store    ports.BookmarkStore
	FolderID string
	URL      string
	Title    string
}

// NewAddItemCommand creates a new AddItemCommand
func NewAddItemCommand(store ports.BookmarkStore, folderID, url, title string) *AddItemCommand {
	return &AddItemCommand{
		store:    store,
		FolderID: folderID,
		URL:      url,
		Title:    title,
	}
}

// Validate checks if the add operation is valid
func (c *AddItemCommand) Validate() error {
	if err := application.ValidateRequired("url", c.URL); err != nil {
		return err
	}
	return application.ValidateRequired("folderID", c.FolderID)
}

// Execute runs the add item command
func (c *AddItemCommand) Execute(ctx context.Context) (*AddItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	url := strings.TrimSpace(c.URL)
	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = url
	}

	item, err := c.store.Create(ctx, domain.CreateProps{
		ParentID: c.FolderID,
		Kind:     domain.KindBookmark,
		Title:    title,
		URL:      url,
	})
	if err != nil {
		return nil, &application.StoreError{Op: "create", ID: c.FolderID, Err: err}
	}

	return &AddItemResult{
		Item:    item,
		Message: fmt.Sprintf("Added bookmark: %s", item.Title),
	}, nil
}
