package zmail

import "context"

// MailService defines the interface for mail operations.
type MailService interface {
	// Account operations
	ListAccounts(ctx context.Context) ([]Account, error)

	// Folder operations
	ListFolders(ctx context.Context) ([]Folder, error)
	GetFolderByName(ctx context.Context, name string) (*Folder, error)
	CreateFolder(ctx context.Context, name, parentID string) (*Folder, error)
	RenameFolder(ctx context.Context, folderID, newName string) error
	MoveFolder(ctx context.Context, folderID, newParentID string) error
	EmptyFolder(ctx context.Context, folderID string) error
	MarkFolderRead(ctx context.Context, folderID string) error
	DeleteFolder(ctx context.Context, folderID string) error

	// Label operations
	ListLabels(ctx context.Context) ([]Label, error)
	CreateLabel(ctx context.Context, name, color string) (*Label, error)
	UpdateLabel(ctx context.Context, labelID, name, color string) error
	DeleteLabel(ctx context.Context, labelID string) error

	// Message operations
	ListMessages(ctx context.Context, folderID string, start, limit int) ([]MessageSummary, error)
	SearchMessages(ctx context.Context, searchKey string, start, limit int) ([]MessageSummary, error)
	GetMessageContent(ctx context.Context, folderID, messageID string) (*MessageContent, error)
	SendMessage(ctx context.Context, req *SendMessageRequest) error
	UpdateMessages(ctx context.Context, req *UpdateMessageRequest) error
	UpdateThread(ctx context.Context, req *UpdateThreadRequest) error
	DeleteMessage(ctx context.Context, folderID, messageID string) error
}

// Compile-time interface compliance check
var _ MailService = (*Client)(nil)
