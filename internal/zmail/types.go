package zmail

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexBool normalizes the API's inconsistent boolean encodings at the parse
// boundary: true/false, "true"/"false", "0"/"1", and raw 0/1 all decode into
// a single bool. Absent or null means false. Raw string variants never
// propagate past this package.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexBool(s == "1" || s == "true")
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexBool(b)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexBool(n != 0)
	return nil
}

func (f FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// FlexInt64 accepts both raw numbers and numeric strings; Zoho returns
// timestamps and counts in either shape depending on the endpoint.
type FlexInt64 int64

func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*f = FlexInt64(n)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt64(n)
	return nil
}

func (f FlexInt64) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(f))
}

// Account represents a Zoho Mail account
type Account struct {
	AccountID    string `json:"accountId"`
	EmailAddress string `json:"emailAddress"`
	DisplayName  string `json:"displayName"`
	Type         string `json:"type"`
}

// Folder represents a mail folder. Folders form a tree via parent ids; the
// tree is never materialized locally.
type Folder struct {
	FolderID       string `json:"folderId"`
	FolderName     string `json:"folderName"`
	FolderType     string `json:"folderType"`
	Path           string `json:"path"`
	ParentFolderID string `json:"parentFolderId"`
	UnreadCount    int    `json:"unreadCount"`
	MessageCount   int    `json:"messageCount"`
}

// Label represents a mail label/tag
type Label struct {
	LabelID    string `json:"labelId"`
	LabelName  string `json:"labelName"`
	LabelColor string `json:"color"`
}

// MessageSummary represents a message in list view. Read, flag, and
// attachment state arrive in whatever encoding the server picked that day
// and are normalized here.
type MessageSummary struct {
	MessageID     string    `json:"messageId"`
	ThreadID      string    `json:"threadId"`
	FolderID      string    `json:"folderId"`
	Subject       string    `json:"subject"`
	FromAddress   string    `json:"fromAddress"`
	ToAddress     string    `json:"toAddress"`
	ReceivedTime  FlexInt64 `json:"receivedTime"` // Unix milliseconds
	IsRead        FlexBool  `json:"status"`
	Flagged       FlexBool  `json:"flagid"`
	HasAttachment FlexBool  `json:"hasAttachment"`
	Summary       string    `json:"summary"`
}

// MessageContent represents a message body
type MessageContent struct {
	MessageID string `json:"messageId"`
	Content   string `json:"content"` // HTML body
}

// SendMessageRequest is the request body for POST /accounts/{id}/messages
type SendMessageRequest struct {
	FromAddress string `json:"fromAddress,omitempty"`
	ToAddress   string `json:"toAddress"`
	CcAddress   string `json:"ccAddress,omitempty"`
	BccAddress  string `json:"bccAddress,omitempty"`
	Subject     string `json:"subject"`
	Content     string `json:"content"`
	MailFormat  string `json:"mailFormat,omitempty"` // "html" or "plaintext"
}

// Validate checks the caller contract before any network activity
func (r *SendMessageRequest) Validate() error {
	if r.ToAddress == "" {
		return &ValidationError{Field: "to", Reason: "recipient address is required"}
	}
	if r.Subject == "" {
		return &ValidationError{Field: "subject", Reason: "subject is required"}
	}
	if r.Content == "" {
		return &ValidationError{Field: "body", Reason: "body content is required"}
	}
	return nil
}
