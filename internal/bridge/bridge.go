package bridge

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// ConnectionStatus describes the helper's view of a user's OAuth connection.
// It is derived fresh on every check and never cached across invocations.
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Account   string `json:"account"`
	Healthy   bool   `json:"healthy"`
}

// Bridge translates CLI identity into the external OAuth-proxy helper's
// notion of a "connection". The helper's output format is not a stable
// contract (mixed JSON and text, spinner lines), so every parse here
// degrades gracefully instead of assuming a schema.
type Bridge struct {
	runner Runner
	log    zerolog.Logger
}

// New creates a Bridge on top of the given runner
func New(runner Runner, log zerolog.Logger) *Bridge {
	return &Bridge{runner: runner, log: log}
}

// NewDefault creates a Bridge that invokes the pdauth binary from PATH
func NewDefault(log zerolog.Logger) *Bridge {
	return New(NewRunner(DefaultHelper, DefaultTimeout, log), log)
}

var (
	urlPattern     = regexp.MustCompile(`https?://[^\s"'<>]+`)
	accountPattern = regexp.MustCompile(`(?i)\bas\s+(\S+@\S+)`)
)

// CheckConnection queries the helper for connection status. It returns nil
// on any process or parse failure so status probes never crash a command.
func (b *Bridge) CheckConnection(ctx context.Context, userID string) *ConnectionStatus {
	out, err := b.runner.Run(ctx, "status", "--user", userID, "--output", "json")
	if err != nil {
		b.log.Debug().Err(err).Msg("connection check failed")
		return nil
	}
	return parseStatus(out)
}

// parseStatus tolerates two helper output shapes: a JSON status object
// (possibly surrounded by spinner/noise lines) and freeform text.
func parseStatus(out []byte) *ConnectionStatus {
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var st ConnectionStatus
		if err := json.Unmarshal([]byte(line), &st); err == nil {
			return &st
		}
	}

	// Freeform fallback: older helpers print lines like
	// "Connected to Zoho Mail as alice@example.com (healthy)".
	// Negative phrasings first: "disconnected" contains "connected".
	text := strings.ToLower(string(out))
	if strings.Contains(text, "disconnected") ||
		strings.Contains(text, "not connected") ||
		strings.Contains(text, "no connection") {
		return &ConnectionStatus{}
	}
	if !strings.Contains(text, "connected") {
		return nil
	}

	st := &ConnectionStatus{
		Connected: true,
		Healthy:   !strings.Contains(text, "unhealthy") && !strings.Contains(text, "expired"),
	}
	if m := accountPattern.FindStringSubmatch(string(out)); m != nil {
		st.Account = strings.TrimRight(m[1], ").,")
	}
	return st
}

// ConnectLink asks the helper for an authorization link and returns the
// first well-formed URL found in its output, or "" if none is present.
func (b *Bridge) ConnectLink(ctx context.Context, userID string) string {
	out, err := b.runner.Run(ctx, "connect", "--user", userID)
	if err != nil {
		b.log.Debug().Err(err).Msg("connect link request failed")
		return ""
	}
	return urlPattern.FindString(string(out))
}

// Disconnect tears down the helper connection with forced confirmation.
// It returns false on any failure so callers can present a uniform
// "could not disconnect" message.
func (b *Bridge) Disconnect(ctx context.Context, userID string) bool {
	_, err := b.runner.Run(ctx, "disconnect", "--user", userID, "--yes")
	if err != nil {
		b.log.Debug().Err(err).Msg("disconnect failed")
	}
	return err == nil
}

// API issues one proxied REST call through the helper and returns its raw
// stdout. Errors are *ProcessError; envelope parsing is the caller's job.
func (b *Bridge) API(ctx context.Context, userID, baseURL, method, path string, query []string, body []byte) ([]byte, error) {
	args := []string{"api", "--user", userID, "--base-url", baseURL, "--method", method, "--path", path}
	for _, q := range query {
		args = append(args, "--query", q)
	}
	if len(body) > 0 {
		args = append(args, "--body", string(body))
	}
	return b.runner.Run(ctx, args...)
}

// Send invokes the helper's narrow high-level send action. Old helper
// builds expose only this; it bypasses the generic REST path entirely.
func (b *Bridge) Send(ctx context.Context, userID string, flags map[string]string) ([]byte, error) {
	args := []string{"send", "--user", userID}
	for _, key := range []string{"to", "cc", "bcc", "subject", "body", "format"} {
		if v := flags[key]; v != "" {
			args = append(args, "--"+key, v)
		}
	}
	return b.runner.Run(ctx, args...)
}
