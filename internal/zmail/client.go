package zmail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// maxRateLimitRetries caps backoff attempts after an HTTP 429 envelope
const maxRateLimitRetries = 4

// envelope is the uniform Zoho response wrapper
type envelope struct {
	Status struct {
		Code        int    `json:"code"`
		Description string `json:"description"`
	} `json:"status"`
	Data json.RawMessage `json:"data"`
}

// Client performs one authenticated REST call per logical operation, routed
// through the injected Transport. It performs no caching; every entity is
// fetched fresh per invocation.
type Client struct {
	transport Transport
	accountID string
	limiter   *rate.Limiter
	log       zerolog.Logger

	// newBackoff produces the retry policy for rate-limited responses
	newBackoff func() backoff.BackOff
}

// NewClient creates a Client bound to a mail account id. The limiter paces
// helper invocations so a scripted caller doesn't trip remote rate limits
// in the first place.
func NewClient(transport Transport, accountID string, log zerolog.Logger) *Client {
	return &Client{
		transport: transport,
		accountID: accountID,
		limiter:   rate.NewLimiter(rate.Every(250*time.Millisecond), 3),
		log:       log,
		newBackoff: func() backoff.BackOff {
			return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRateLimitRetries)
		},
	}
}

// AccountID returns the account id the client is bound to
func (c *Client) AccountID() string {
	return c.accountID
}

// do runs the core request path: capability gate, pacing, transport call,
// balanced-JSON envelope scan, status check, and optional data decode.
// Envelope code 429 is retried with capped exponential backoff; every other
// failure is returned as-is with no retry.
func (c *Client) do(ctx context.Context, cap Capability, method, path string, query url.Values, body, out any) error {
	if !c.transport.Capabilities().Has(cap) {
		return &CapabilityError{Op: cap}
	}

	var env envelope
	attempt := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		c.log.Debug().Str("method", method).Str("path", path).Msg("api request")

		raw, err := c.transport.Request(ctx, method, path, query, body)
		if err != nil {
			return backoff.Permanent(err)
		}

		block, err := ExtractJSONObject(raw)
		if err != nil {
			return backoff.Permanent(&TransportError{Reason: "no response envelope", Err: err})
		}

		env = envelope{}
		if err := json.Unmarshal(block, &env); err != nil {
			return backoff.Permanent(&TransportError{Reason: "malformed response envelope", Err: err})
		}

		switch {
		case env.Status.Code == 200:
			return nil
		case env.Status.Code == 429:
			c.log.Debug().Str("path", path).Msg("rate limited, backing off")
			return &APIError{Code: 429, Description: env.Status.Description}
		default:
			return backoff.Permanent(&APIError{Code: env.Status.Code, Description: env.Status.Description})
		}
	}

	bo := backoff.WithContext(c.newBackoff(), ctx)
	if err := backoff.Retry(attempt, bo); err != nil {
		return err
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &TransportError{Reason: "decode response data", Err: err}
		}
	}
	return nil
}

// pageQuery builds the standard start/limit pagination parameters
func pageQuery(start, limit int) url.Values {
	q := url.Values{}
	q.Set("start", strconv.Itoa(start))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// ListAccounts fetches all mail accounts visible to the connection
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := c.do(ctx, CapAccounts, "GET", "/accounts", nil, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListFolders fetches all folders for the account
func (c *Client) ListFolders(ctx context.Context) ([]Folder, error) {
	path := fmt.Sprintf("/accounts/%s/folders", c.accountID)
	var folders []Folder
	if err := c.do(ctx, CapFolders, "GET", path, nil, nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// GetFolderByName finds a folder by name (case-insensitive)
func (c *Client) GetFolderByName(ctx context.Context, name string) (*Folder, error) {
	folders, err := c.ListFolders(ctx)
	if err != nil {
		return nil, err
	}

	for _, folder := range folders {
		if strings.EqualFold(folder.FolderName, name) {
			return &folder, nil
		}
	}

	return nil, fmt.Errorf("folder not found: %s", name)
}

// CreateFolder creates a folder, optionally under a parent
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*Folder, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "folder name is required"}
	}

	path := fmt.Sprintf("/accounts/%s/folders", c.accountID)
	body := map[string]string{"folderName": name}
	if parentID != "" {
		body["parentFolderId"] = parentID
	}

	var folder Folder
	if err := c.do(ctx, CapFolders, "POST", path, nil, body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// RenameFolder changes a folder's display name
func (c *Client) RenameFolder(ctx context.Context, folderID, newName string) error {
	if newName == "" {
		return &ValidationError{Field: "name", Reason: "new folder name is required"}
	}
	return c.updateFolder(ctx, folderID, map[string]string{
		"mode":       "renameFolder",
		"folderName": newName,
	})
}

// MoveFolder reparents a folder in the tree
func (c *Client) MoveFolder(ctx context.Context, folderID, newParentID string) error {
	if newParentID == "" {
		return &ValidationError{Field: "parent", Reason: "destination parent folder id is required"}
	}
	return c.updateFolder(ctx, folderID, map[string]string{
		"mode":           "moveFolder",
		"parentFolderId": newParentID,
	})
}

// EmptyFolder removes every message in a folder
func (c *Client) EmptyFolder(ctx context.Context, folderID string) error {
	return c.updateFolder(ctx, folderID, map[string]string{"mode": "emptyFolder"})
}

// MarkFolderRead marks every message in a folder as read
func (c *Client) MarkFolderRead(ctx context.Context, folderID string) error {
	return c.updateFolder(ctx, folderID, map[string]string{"mode": "markAllAsRead"})
}

// updateFolder multiplexes folder mutations over the folder PUT endpoint
func (c *Client) updateFolder(ctx context.Context, folderID string, body map[string]string) error {
	path := fmt.Sprintf("/accounts/%s/folders/%s", c.accountID, folderID)
	return c.do(ctx, CapFolders, "PUT", path, nil, body, nil)
}

// DeleteFolder permanently deletes a folder
func (c *Client) DeleteFolder(ctx context.Context, folderID string) error {
	path := fmt.Sprintf("/accounts/%s/folders/%s", c.accountID, folderID)
	return c.do(ctx, CapDelete, "DELETE", path, nil, nil, nil)
}

// ListLabels fetches all labels for the account
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	path := fmt.Sprintf("/accounts/%s/labels", c.accountID)
	var labels []Label
	if err := c.do(ctx, CapLabels, "GET", path, nil, nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// CreateLabel creates a label with an optional display color
func (c *Client) CreateLabel(ctx context.Context, name, color string) (*Label, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "label name is required"}
	}

	path := fmt.Sprintf("/accounts/%s/labels", c.accountID)
	body := map[string]string{"labelName": name}
	if color != "" {
		body["color"] = color
	}

	var label Label
	if err := c.do(ctx, CapLabels, "POST", path, nil, body, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// UpdateLabel changes a label's name and/or color; empty fields are left as-is
func (c *Client) UpdateLabel(ctx context.Context, labelID, name, color string) error {
	if name == "" && color == "" {
		return &ValidationError{Field: "label", Reason: "nothing to update: provide a name or a color"}
	}

	path := fmt.Sprintf("/accounts/%s/labels/%s", c.accountID, labelID)
	body := map[string]string{}
	if name != "" {
		body["labelName"] = name
	}
	if color != "" {
		body["color"] = color
	}
	return c.do(ctx, CapLabels, "PUT", path, nil, body, nil)
}

// DeleteLabel permanently deletes a label
func (c *Client) DeleteLabel(ctx context.Context, labelID string) error {
	path := fmt.Sprintf("/accounts/%s/labels/%s", c.accountID, labelID)
	return c.do(ctx, CapDelete, "DELETE", path, nil, nil, nil)
}

// ListMessages fetches messages from a folder with pagination
func (c *Client) ListMessages(ctx context.Context, folderID string, start, limit int) ([]MessageSummary, error) {
	path := fmt.Sprintf("/accounts/%s/messages/view", c.accountID)
	q := pageQuery(start, limit)
	q.Set("folderId", folderID)

	var messages []MessageSummary
	if err := c.do(ctx, CapMessages, "GET", path, q, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SearchMessages searches messages using Zoho search syntax
func (c *Client) SearchMessages(ctx context.Context, searchKey string, start, limit int) ([]MessageSummary, error) {
	if searchKey == "" {
		return nil, &ValidationError{Field: "query", Reason: "search key is required"}
	}

	path := fmt.Sprintf("/accounts/%s/messages/search", c.accountID)
	q := pageQuery(start, limit)
	q.Set("searchKey", searchKey)

	var messages []MessageSummary
	if err := c.do(ctx, CapMessages, "GET", path, q, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// GetMessageContent fetches the body content for a specific message
func (c *Client) GetMessageContent(ctx context.Context, folderID, messageID string) (*MessageContent, error) {
	path := fmt.Sprintf("/accounts/%s/folders/%s/messages/%s/content", c.accountID, folderID, messageID)
	var content MessageContent
	if err := c.do(ctx, CapMessages, "GET", path, nil, nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// SendMessage sends a new email message
func (c *Client) SendMessage(ctx context.Context, req *SendMessageRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	path := fmt.Sprintf("/accounts/%s/messages", c.accountID)
	return c.do(ctx, CapSend, "POST", path, nil, req, nil)
}

// UpdateMessages applies one update mode to a batch of messages
func (c *Client) UpdateMessages(ctx context.Context, req *UpdateMessageRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	path := fmt.Sprintf("/accounts/%s/updatemessage", c.accountID)
	return c.do(ctx, CapUpdate, "PUT", path, nil, req, nil)
}

// UpdateThread applies one update mode to every message in a thread
func (c *Client) UpdateThread(ctx context.Context, req *UpdateThreadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	path := fmt.Sprintf("/accounts/%s/updatethread", c.accountID)
	return c.do(ctx, CapUpdate, "PUT", path, nil, req, nil)
}

// DeleteMessage permanently deletes a message from a folder
func (c *Client) DeleteMessage(ctx context.Context, folderID, messageID string) error {
	path := fmt.Sprintf("/accounts/%s/folders/%s/messages/%s", c.accountID, folderID, messageID)
	return c.do(ctx, CapDelete, "DELETE", path, nil, nil, nil)
}
