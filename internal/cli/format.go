package cli

import (
	"regexp"
	"strings"
	"time"

	"github.com/Versatly/zoho-mail-cli/internal/zmail"
)

// statusGlyph derives the read-state indicator for list output
func statusGlyph(isRead bool) string {
	if isRead {
		return " "
	}
	return "●"
}

// flagGlyph derives the flag indicator for list output
func flagGlyph(flagged bool) string {
	if flagged {
		return "⚑"
	}
	return " "
}

// attachmentGlyph derives the attachment indicator for list output
func attachmentGlyph(hasAttachment bool) string {
	if hasAttachment {
		return "📎"
	}
	return " "
}

// folderIcon maps a folder type to its display icon
func folderIcon(folderType string) string {
	switch strings.ToLower(folderType) {
	case "inbox":
		return "📥"
	case "sent":
		return "📤"
	case "drafts":
		return "📝"
	case "trash":
		return "🗑"
	case "spam":
		return "⚠"
	case "archive":
		return "📦"
	default:
		return "📁"
	}
}

// formatTime converts a unix-milliseconds timestamp to display form
func formatTime(ms zmail.FlexInt64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(int64(ms)).Format("2006-01-02 15:04")
}

// formatBool converts bool to string
func formatBool(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

var htmlTagPattern = regexp.MustCompile("<[^>]*>")

// formatBody processes HTML content based on output mode. JSON mode returns
// raw HTML; table and compact modes strip tags.
func formatBody(htmlContent, outputMode string) string {
	if outputMode == "json" {
		return htmlContent
	}
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(htmlContent, ""))
}

// messageRow is a display struct for message list output
type messageRow struct {
	Status     string
	Flag       string
	Attachment string
	From       string
	Subject    string
	Date       string
	MessageID  string
}

// messageRows converts summaries to display rows with derived glyphs
func messageRows(messages []zmail.MessageSummary) []messageRow {
	rows := make([]messageRow, len(messages))
	for i, msg := range messages {
		rows[i] = messageRow{
			Status:     statusGlyph(bool(msg.IsRead)),
			Flag:       flagGlyph(bool(msg.Flagged)),
			Attachment: attachmentGlyph(bool(msg.HasAttachment)),
			From:       msg.FromAddress,
			Subject:    msg.Subject,
			Date:       formatTime(msg.ReceivedTime),
			MessageID:  msg.MessageID,
		}
	}
	return rows
}

// folderRow is a display struct for folder list output
type folderRow struct {
	Icon     string
	Name     string
	Type     string
	Path     string
	Messages int
	Unread   int
	FolderID string
}

// folderRows converts folders to display rows with derived icons
func folderRows(folders []zmail.Folder) []folderRow {
	rows := make([]folderRow, len(folders))
	for i, f := range folders {
		rows[i] = folderRow{
			Icon:     folderIcon(f.FolderType),
			Name:     f.FolderName,
			Type:     f.FolderType,
			Path:     f.Path,
			Messages: f.MessageCount,
			Unread:   f.UnreadCount,
			FolderID: f.FolderID,
		}
	}
	return rows
}
