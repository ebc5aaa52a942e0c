package zmail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/Versatly/zoho-mail-cli/internal/bridge"
)

// Transport is the credentialed intermediary through which all remote API
// calls are issued; the CLI holds no API token of its own. The concrete
// binding (subprocess helper, in-process fake) hides behind this interface.
type Transport interface {
	// Request performs one call and returns the raw response output, which
	// may contain noise around the JSON envelope.
	Request(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error)

	// Capabilities returns the static set of operations this transport can
	// reach.
	Capabilities() CapabilitySet
}

// ProxyTransport issues structured REST calls through the helper's generic
// api subcommand. This is the authoritative contract; see LegacyTransport
// for the deprecated fallback.
type ProxyTransport struct {
	bridge  *bridge.Bridge
	userID  string
	baseURL string
}

// NewProxyTransport creates a transport bound to a helper user and a
// region-specific API base.
func NewProxyTransport(b *bridge.Bridge, userID, baseURL string) *ProxyTransport {
	return &ProxyTransport{bridge: b, userID: userID, baseURL: baseURL}
}

func (t *ProxyTransport) Request(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	// Stable query ordering keeps invocations reproducible in debug logs
	var pairs []string
	for key, values := range query {
		for _, v := range values {
			pairs = append(pairs, key+"="+v)
		}
	}
	sort.Strings(pairs)

	return t.bridge.API(ctx, t.userID, t.baseURL, method, path, pairs, payload)
}

func (t *ProxyTransport) Capabilities() CapabilitySet {
	return FullCapabilities()
}

// LegacyTransport drives old helper builds whose integration exposes only a
// single high-level send action. Every other operation is absent from its
// capability set and fails fast at the gate.
type LegacyTransport struct {
	bridge *bridge.Bridge
	userID string
}

// NewLegacyTransport creates the deprecated send-only transport
func NewLegacyTransport(b *bridge.Bridge, userID string) *LegacyTransport {
	return &LegacyTransport{bridge: b, userID: userID}
}

func (t *LegacyTransport) Request(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	req, ok := body.(*SendMessageRequest)
	if !ok || method != "POST" || !strings.HasSuffix(path, "/messages") {
		return nil, &TransportError{Reason: fmt.Sprintf("legacy helper cannot serve %s %s", method, path)}
	}

	flags := map[string]string{
		"to":      req.ToAddress,
		"cc":      req.CcAddress,
		"bcc":     req.BccAddress,
		"subject": req.Subject,
		"body":    req.Content,
		"format":  req.MailFormat,
	}
	if _, err := t.bridge.Send(ctx, t.userID, flags); err != nil {
		return nil, err
	}

	// Old helpers print free text with no envelope; synthesize one so the
	// client sees a uniform response contract.
	return []byte(`{"status":{"code":200,"description":"success"}}`), nil
}

func (t *LegacyTransport) Capabilities() CapabilitySet {
	return SendOnlyCapabilities()
}
