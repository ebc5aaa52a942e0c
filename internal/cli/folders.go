package cli

import (
	"context"
	"fmt"

	"github.com/Versatly/zoho-mail-cli/internal/output"
)

var folderColumns = []output.Column{
	{Name: "", Key: "Icon"},
	{Name: "Name", Key: "Name"},
	{Name: "Type", Key: "Type"},
	{Name: "Path", Key: "Path"},
	{Name: "Messages", Key: "Messages"},
	{Name: "Unread", Key: "Unread"},
	{Name: "ID", Key: "FolderID"},
}

// FoldersListCmd lists all folders
type FoldersListCmd struct{}

// Run executes the list folders command
func (cmd *FoldersListCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	folders, err := mail.ListFolders(ctx)
	if err != nil {
		return wrapServiceError("fetch folders", err)
	}

	return fp.Formatter.PrintList(folderRows(folders), folderColumns)
}

// FoldersCreateCmd creates a folder
type FoldersCreateCmd struct {
	Name   string `arg:"" help:"Folder name"`
	Parent string `help:"Parent folder name or ID"`
}

// Run executes the create folder command
func (cmd *FoldersCreateCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	parentID := ""
	if cmd.Parent != "" {
		parentID = resolveFolder(ctx, mail, cmd.Parent)
	}

	folder, err := mail.CreateFolder(ctx, cmd.Name, parentID)
	if err != nil {
		return wrapServiceError("create folder", err)
	}

	fp.Formatter.PrintMessage(fmt.Sprintf("Created folder %s (%s)", folder.FolderName, folder.FolderID))
	return nil
}

// FoldersRenameCmd renames a folder
type FoldersRenameCmd struct {
	Folder string `arg:"" help:"Folder name or ID"`
	Name   string `arg:"" help:"New folder name"`
}

// Run executes the rename folder command
func (cmd *FoldersRenameCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	folderID := resolveFolder(ctx, mail, cmd.Folder)
	if err := mail.RenameFolder(ctx, folderID, cmd.Name); err != nil {
		return wrapServiceError("rename folder", err)
	}

	fp.Formatter.PrintMessage("Renamed to " + cmd.Name)
	return nil
}

// FoldersMoveCmd moves a folder under a new parent
type FoldersMoveCmd struct {
	Folder string `arg:"" help:"Folder name or ID"`
	Parent string `arg:"" help:"New parent folder name or ID"`
}

// Run executes the move folder command
func (cmd *FoldersMoveCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	folderID := resolveFolder(ctx, mail, cmd.Folder)
	parentID := resolveFolder(ctx, mail, cmd.Parent)
	if err := mail.MoveFolder(ctx, folderID, parentID); err != nil {
		return wrapServiceError("move folder", err)
	}

	fp.Formatter.PrintMessage("Moved " + cmd.Folder)
	return nil
}

// FoldersEmptyCmd removes every message in a folder
type FoldersEmptyCmd struct {
	Folder string `arg:"" help:"Folder name or ID"`
}

// Run executes the empty folder command
func (cmd *FoldersEmptyCmd) Run(sp *ServiceProvider, fp *FormatterProvider, globals *Globals) error {
	if !globals.Force {
		fp.Formatter.PrintMessage("Refusing to empty folder without --force")
		fp.Formatter.PrintHint(fmt.Sprintf("Rerun: zmail folders empty %s --force", cmd.Folder))
		return nil
	}

	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	folderID := resolveFolder(ctx, mail, cmd.Folder)
	if err := mail.EmptyFolder(ctx, folderID); err != nil {
		return wrapServiceError("empty folder", err)
	}

	fp.Formatter.PrintMessage("Emptied " + cmd.Folder)
	return nil
}

// FoldersMarkReadCmd marks every message in a folder as read
type FoldersMarkReadCmd struct {
	Folder string `arg:"" help:"Folder name or ID"`
}

// Run executes the folder mark-read command
func (cmd *FoldersMarkReadCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	folderID := resolveFolder(ctx, mail, cmd.Folder)
	if err := mail.MarkFolderRead(ctx, folderID); err != nil {
		return wrapServiceError("mark folder read", err)
	}

	fp.Formatter.PrintMessage("Marked " + cmd.Folder + " as read")
	return nil
}

// FoldersDeleteCmd deletes a folder permanently
type FoldersDeleteCmd struct {
	Folder string `arg:"" help:"Folder name or ID"`
}

// Run executes the delete folder command. Without --force it performs no
// network call and exits successfully with a warning.
func (cmd *FoldersDeleteCmd) Run(sp *ServiceProvider, fp *FormatterProvider, globals *Globals) error {
	if !globals.Force {
		fp.Formatter.PrintMessage("Refusing to delete without --force")
		fp.Formatter.PrintHint(fmt.Sprintf("Rerun: zmail folders delete %s --force", cmd.Folder))
		return nil
	}

	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	folderID := resolveFolder(ctx, mail, cmd.Folder)
	if err := mail.DeleteFolder(ctx, folderID); err != nil {
		return wrapServiceError("delete folder", err)
	}

	fp.Formatter.PrintMessage("Deleted " + cmd.Folder)
	return nil
}
