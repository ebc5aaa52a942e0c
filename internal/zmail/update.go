package zmail

// UpdateMode is one of the closed set of message update actions accepted by
// PUT /accounts/{id}/updatemessage. Exactly one mode is sent per call.
type UpdateMode string

const (
	ModeMarkRead   UpdateMode = "markAsRead"
	ModeMarkUnread UpdateMode = "markAsUnread"
	ModeMove       UpdateMode = "moveToFolder"
	ModeAddFlag    UpdateMode = "addFlag"
	ModeRemoveFlag UpdateMode = "removeFlag"
	ModeAddTag     UpdateMode = "addTag"
	ModeRemoveTag  UpdateMode = "removeTag"
	ModeArchive    UpdateMode = "archive"
	ModeUnarchive  UpdateMode = "unarchive"
	ModeSpam       UpdateMode = "spam"
	ModeNotSpam    UpdateMode = "notSpam"
)

var updateModes = map[UpdateMode]bool{
	ModeMarkRead:   true,
	ModeMarkUnread: true,
	ModeMove:       true,
	ModeAddFlag:    true,
	ModeRemoveFlag: true,
	ModeAddTag:     true,
	ModeRemoveTag:  true,
	ModeArchive:    true,
	ModeUnarchive:  true,
	ModeSpam:       true,
	ModeNotSpam:    true,
}

// UpdateMessageRequest is the request body for the updatemessage endpoint
type UpdateMessageRequest struct {
	Mode         UpdateMode `json:"mode"`
	MessageIDs   []string   `json:"messageId"`
	DestFolderID string     `json:"destfolderId,omitempty"`
	LabelID      string     `json:"labelId,omitempty"`
}

// Validate enforces the caller contract: a known mode, at least one message,
// and the mode-specific required ids. Omission is an argument error, not a
// server error.
func (r *UpdateMessageRequest) Validate() error {
	if !updateModes[r.Mode] {
		return &ValidationError{Field: "mode", Reason: "unknown update mode: " + string(r.Mode)}
	}
	if len(r.MessageIDs) == 0 {
		return &ValidationError{Field: "messageId", Reason: "at least one message id is required"}
	}

	switch r.Mode {
	case ModeMove:
		if r.DestFolderID == "" {
			return &ValidationError{Field: "destfolderId", Reason: "destination folder id is required for moveToFolder"}
		}
	case ModeAddTag, ModeRemoveTag:
		if r.LabelID == "" {
			return &ValidationError{Field: "labelId", Reason: "label id is required for " + string(r.Mode)}
		}
	}

	return nil
}

// UpdateThreadRequest is the request body for the updatethread endpoint.
// It accepts the same mode set as updatemessage, applied thread-wide.
type UpdateThreadRequest struct {
	Mode         UpdateMode `json:"mode"`
	ThreadID     string     `json:"threadId"`
	DestFolderID string     `json:"destfolderId,omitempty"`
	LabelID      string     `json:"labelId,omitempty"`
}

// Validate enforces the thread update caller contract
func (r *UpdateThreadRequest) Validate() error {
	if !updateModes[r.Mode] {
		return &ValidationError{Field: "mode", Reason: "unknown update mode: " + string(r.Mode)}
	}
	if r.ThreadID == "" {
		return &ValidationError{Field: "threadId", Reason: "thread id is required"}
	}
	if r.Mode == ModeMove && r.DestFolderID == "" {
		return &ValidationError{Field: "destfolderId", Reason: "destination folder id is required for moveToFolder"}
	}
	if (r.Mode == ModeAddTag || r.Mode == ModeRemoveTag) && r.LabelID == "" {
		return &ValidationError{Field: "labelId", Reason: "label id is required for " + string(r.Mode)}
	}
	return nil
}
