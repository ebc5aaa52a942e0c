package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/Versatly/zoho-mail-cli/internal/config"
	"github.com/Versatly/zoho-mail-cli/internal/output"
	"github.com/Versatly/zoho-mail-cli/internal/zmail"
)

var messageColumns = []output.Column{
	{Name: "", Key: "Status"},
	{Name: "", Key: "Flag"},
	{Name: "", Key: "Attachment"},
	{Name: "From", Key: "From"},
	{Name: "Subject", Key: "Subject", Width: 60},
	{Name: "Date", Key: "Date"},
	{Name: "ID", Key: "MessageID"},
}

// resolveFolder turns a folder name into an id, falling back to treating the
// argument as an id when no folder matches by name.
func resolveFolder(ctx context.Context, mail zmail.MailService, nameOrID string) string {
	folder, err := mail.GetFolderByName(ctx, nameOrID)
	if err != nil {
		return nameOrID
	}
	return folder.FolderID
}

// defaultFolder picks the folder argument, the configured default, or Inbox
func defaultFolder(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	if cfg.DefaultFolder != "" {
		return cfg.DefaultFolder
	}
	return "Inbox"
}

// MailListCmd lists messages in a folder
type MailListCmd struct {
	Folder string `help:"Folder name or ID" short:"f"`
	Limit  int    `help:"Maximum messages to show" short:"l" default:"50"`
	Start  int    `help:"Pagination offset" default:"1"`
	All    bool   `help:"Fetch all messages" short:"a"`
}

// Run executes the list messages command
func (cmd *MailListCmd) Run(cfg *config.Config, sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	folderID := resolveFolder(ctx, mail, defaultFolder(cmd.Folder, cfg))

	var messages []zmail.MessageSummary
	if cmd.All {
		iterator := zmail.NewPageIterator(func(start, limit int) ([]zmail.MessageSummary, error) {
			return mail.ListMessages(ctx, folderID, start, limit)
		}, 50)
		messages, err = iterator.FetchAll()
	} else {
		messages, err = mail.ListMessages(ctx, folderID, cmd.Start, cmd.Limit)
	}
	if err != nil {
		return wrapServiceError("fetch messages", err)
	}

	return fp.Formatter.PrintList(messageRows(messages), messageColumns)
}

// MailReadCmd shows a message's content
type MailReadCmd struct {
	MessageID string `arg:"" help:"Message ID to read"`
	Folder    string `help:"Folder name or ID" short:"f"`
}

// messageDetail is the display struct for a single message
type messageDetail struct {
	MessageID string
	Body      string
}

// Run executes the read command
func (cmd *MailReadCmd) Run(cfg *config.Config, sp *ServiceProvider, fp *FormatterProvider, globals *Globals) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	folderID := resolveFolder(ctx, mail, defaultFolder(cmd.Folder, cfg))

	content, err := mail.GetMessageContent(ctx, folderID, cmd.MessageID)
	if err != nil {
		return wrapServiceError("fetch message content", err)
	}

	return fp.Formatter.Print(messageDetail{
		MessageID: content.MessageID,
		Body:      formatBody(content.Content, globals.ResolvedOutput()),
	})
}

// MailSearchCmd searches messages
type MailSearchCmd struct {
	Query         string `arg:"" optional:"" help:"Free-text search query"`
	From          string `help:"Filter by sender email"`
	Subject       string `help:"Filter by subject" short:"s"`
	After         string `help:"Messages after date (YYYY-MM-DD)"`
	Before        string `help:"Messages before date (YYYY-MM-DD)"`
	Unread        bool   `help:"Only unread messages" short:"u"`
	Flagged       bool   `help:"Only flagged messages"`
	HasAttachment bool   `help:"Only messages with attachments"`
	Limit         int    `help:"Maximum results" short:"l" default:"50"`
}

// Run executes the search command
func (cmd *MailSearchCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	sq := zmail.NewSearchQuery()
	if cmd.From != "" {
		sq.From(cmd.From)
	}
	if cmd.Subject != "" {
		sq.Subject(cmd.Subject)
	}
	if cmd.After != "" {
		after, err := time.Parse("2006-01-02", cmd.After)
		if err != nil {
			return output.NewCLIError(fmt.Sprintf("Invalid after date (use YYYY-MM-DD): %v", err))
		}
		sq.DateAfter(after)
	}
	if cmd.Before != "" {
		before, err := time.Parse("2006-01-02", cmd.Before)
		if err != nil {
			return output.NewCLIError(fmt.Sprintf("Invalid before date (use YYYY-MM-DD): %v", err))
		}
		sq.DateBefore(before)
	}
	if cmd.Unread {
		sq.IsUnread()
	}
	if cmd.Flagged {
		sq.IsFlagged()
	}
	if cmd.HasAttachment {
		sq.HasAttachment()
	}
	if cmd.Query != "" {
		sq.Text(cmd.Query)
	}

	if sq.IsEmpty() {
		return output.NewCLIError("no search criteria given").
			WithHint("Pass a query or at least one filter flag")
	}

	messages, err := mail.SearchMessages(ctx, sq.Build(), 1, cmd.Limit)
	if err != nil {
		return wrapServiceError("search messages", err)
	}

	return fp.Formatter.PrintList(messageRows(messages), messageColumns)
}

// MailSendCmd sends a message
type MailSendCmd struct {
	To      string `help:"Recipient address" required:""`
	Cc      string `help:"Cc addresses (comma-separated)"`
	Bcc     string `help:"Bcc addresses (comma-separated)"`
	Subject string `help:"Message subject" required:""`
	Body    string `help:"Message body" required:""`
	From    string `help:"Sender address (default: account address)"`
	Format  string `help:"Mail format" default:"plaintext" enum:"plaintext,html"`
}

// Run executes the send command
func (cmd *MailSendCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	req := &zmail.SendMessageRequest{
		FromAddress: cmd.From,
		ToAddress:   cmd.To,
		CcAddress:   cmd.Cc,
		BccAddress:  cmd.Bcc,
		Subject:     cmd.Subject,
		Content:     cmd.Body,
		MailFormat:  cmd.Format,
	}
	if err := mail.SendMessage(ctx, req); err != nil {
		return wrapServiceError("send message", err)
	}

	fp.Formatter.PrintMessage("Message sent to " + cmd.To)
	return nil
}

// updateFlags carries the shared flags of the message update commands
type updateFlags struct {
	MessageIDs []string `arg:"" help:"Message ID(s) to update"`
	Thread     bool     `help:"Apply to the whole thread (single ID only)"`
}

// runUpdate dispatches one update mode over messages or a thread
func runUpdate(sp *ServiceProvider, fp *FormatterProvider, flags updateFlags, mode zmail.UpdateMode, destFolderID, labelID, done string) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	if flags.Thread {
		if len(flags.MessageIDs) != 1 {
			return output.NewCLIError("--thread accepts exactly one thread id")
		}
		err = mail.UpdateThread(ctx, &zmail.UpdateThreadRequest{
			Mode:         mode,
			ThreadID:     flags.MessageIDs[0],
			DestFolderID: destFolderID,
			LabelID:      labelID,
		})
	} else {
		err = mail.UpdateMessages(ctx, &zmail.UpdateMessageRequest{
			Mode:         mode,
			MessageIDs:   flags.MessageIDs,
			DestFolderID: destFolderID,
			LabelID:      labelID,
		})
	}
	if err != nil {
		return wrapServiceError("update messages", err)
	}

	fp.Formatter.PrintMessage(done)
	return nil
}

// MailMoveCmd moves messages to another folder
type MailMoveCmd struct {
	updateFlags
	Folder string `help:"Destination folder name or ID" required:""`
}

func (cmd *MailMoveCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}
	folderID := resolveFolder(ctx, mail, cmd.Folder)
	return runUpdate(sp, fp, cmd.updateFlags, zmail.ModeMove, folderID, "", "Moved")
}

// MailDeleteCmd permanently deletes a message
type MailDeleteCmd struct {
	MessageID string `arg:"" help:"Message ID to delete"`
	Folder    string `help:"Folder name or ID" short:"f"`
}

func (cmd *MailDeleteCmd) Run(cfg *config.Config, sp *ServiceProvider, fp *FormatterProvider, globals *Globals) error {
	if !globals.Force {
		fp.Formatter.PrintMessage("Refusing to delete without --force")
		fp.Formatter.PrintHint(fmt.Sprintf("Rerun: zmail mail delete %s --force", cmd.MessageID))
		return nil
	}

	ctx := context.Background()
	mail, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	folderID := resolveFolder(ctx, mail, defaultFolder(cmd.Folder, cfg))
	if err := mail.DeleteMessage(ctx, folderID, cmd.MessageID); err != nil {
		return wrapServiceError("delete message", err)
	}

	fp.Formatter.PrintMessage("Deleted " + cmd.MessageID)
	return nil
}

// MailFlagCmd flags messages
type MailFlagCmd struct{ updateFlags }

func (cmd *MailFlagCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	return runUpdate(sp, fp, cmd.updateFlags, zmail.ModeAddFlag, "", "", "Flagged")
}

// MailUnflagCmd removes the flag from messages
type MailUnflagCmd struct{ updateFlags }

func (cmd *MailUnflagCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	return runUpdate(sp, fp, cmd.updateFlags, zmail.ModeRemoveFlag, "", "", "Unflagged")
}

// MailArchiveCmd archives messages
type MailArchiveCmd struct{ updateFlags }

func (cmd *MailArchiveCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	return runUpdate(sp, fp, cmd.updateFlags, zmail.ModeArchive, "", "", "Archived")
}

// MailUnarchiveCmd moves messages out of the archive
type MailUnarchiveCmd struct{ updateFlags }

func (cmd *MailUnarchiveCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	return runUpdate(sp, fp, cmd.updateFlags, zmail.ModeUnarchive, "", "", "Unarchived")
}

// MailSpamCmd marks messages as spam
type MailSpamCmd struct{ updateFlags }

func (cmd *MailSpamCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	return runUpdate(sp, fp, cmd.updateFlags, zmail.ModeSpam, "", "", "Marked as spam")
}

// MailUnspamCmd marks messages as not spam
type MailUnspamCmd struct{ updateFlags }

func (cmd *MailUnspamCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	return runUpdate(sp, fp, cmd.updateFlags, zmail.ModeNotSpam, "", "", "Marked as not spam")
}

// MailMarkReadCmd marks messages as read
type MailMarkReadCmd struct{ updateFlags }

func (cmd *MailMarkReadCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	return runUpdate(sp, fp, cmd.updateFlags, zmail.ModeMarkRead, "", "", "Marked as read")
}

// MailMarkUnreadCmd marks messages as unread
type MailMarkUnreadCmd struct{ updateFlags }

func (cmd *MailMarkUnreadCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	return runUpdate(sp, fp, cmd.updateFlags, zmail.ModeMarkUnread, "", "", "Marked as unread")
}

// MailLabelCmd adds a label to messages
type MailLabelCmd struct {
	updateFlags
	Label string `help:"Label ID to add" required:""`
}

func (cmd *MailLabelCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	return runUpdate(sp, fp, cmd.updateFlags, zmail.ModeAddTag, "", cmd.Label, "Labeled")
}

// MailUnlabelCmd removes a label from messages
type MailUnlabelCmd struct {
	updateFlags
	Label string `help:"Label ID to remove" required:""`
}

func (cmd *MailUnlabelCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	return runUpdate(sp, fp, cmd.updateFlags, zmail.ModeRemoveTag, "", cmd.Label, "Unlabeled")
}
