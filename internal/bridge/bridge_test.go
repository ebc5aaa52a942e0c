package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner replays a canned stdout or error and records arguments
type fakeRunner struct {
	out   []byte
	err   error
	calls [][]string
}

func (f *fakeRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	return f.out, f.err
}

func newTestBridge(r Runner) *Bridge {
	return New(r, zerolog.Nop())
}

func TestCheckConnectionJSONOutput(t *testing.T) {
	b := newTestBridge(&fakeRunner{out: []byte(`⠋ checking...
{"connected":true,"account":"alice@example.com","healthy":true}
done`)})

	st := b.CheckConnection(context.Background(), "default")
	require.NotNil(t, st)
	assert.True(t, st.Connected)
	assert.Equal(t, "alice@example.com", st.Account)
	assert.True(t, st.Healthy)
}

func TestCheckConnectionFreeformOutput(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		expected *ConnectionStatus
	}{
		{
			name:     "connected with account",
			out:      "Connected to Zoho Mail as alice@example.com (healthy)\n",
			expected: &ConnectionStatus{Connected: true, Account: "alice@example.com", Healthy: true},
		},
		{
			name:     "connected but expired",
			out:      "Connected as bob@example.com, token expired\n",
			expected: &ConnectionStatus{Connected: true, Account: "bob@example.com", Healthy: false},
		},
		{
			name:     "not connected",
			out:      "Not connected. Run connect first.\n",
			expected: &ConnectionStatus{},
		},
		{
			name:     "disconnected",
			out:      "Disconnected. Run connect to authorize.\n",
			expected: &ConnectionStatus{},
		},
		{
			name:     "unrecognized text",
			out:      "something else entirely\n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBridge(&fakeRunner{out: []byte(tt.out)})
			st := b.CheckConnection(context.Background(), "default")
			assert.Equal(t, tt.expected, st)
		})
	}
}

func TestCheckConnectionFailsSoft(t *testing.T) {
	b := newTestBridge(&fakeRunner{err: &ProcessError{Err: errors.New("exit status 1")}})
	assert.Nil(t, b.CheckConnection(context.Background(), "default"))
}

func TestConnectLinkExtractsFirstURL(t *testing.T) {
	b := newTestBridge(&fakeRunner{out: []byte(
		"Visit the link below to authorize:\nhttps://accounts.zoho.com/oauth/v2/auth?scope=mail\nthen return here\n")})

	link := b.ConnectLink(context.Background(), "default")
	assert.Equal(t, "https://accounts.zoho.com/oauth/v2/auth?scope=mail", link)
}

func TestConnectLinkEmptyWhenAbsent(t *testing.T) {
	b := newTestBridge(&fakeRunner{out: []byte("no link today\n")})
	assert.Empty(t, b.ConnectLink(context.Background(), "default"))
}

func TestDisconnect(t *testing.T) {
	r := &fakeRunner{out: []byte("disconnected\n")}
	b := newTestBridge(r)

	assert.True(t, b.Disconnect(context.Background(), "default"))
	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"disconnect", "--user", "default", "--yes"}, r.calls[0])

	b = newTestBridge(&fakeRunner{err: &ProcessError{Err: errors.New("exit status 1")}})
	assert.False(t, b.Disconnect(context.Background(), "default"))
}

func TestAPIBuildsArguments(t *testing.T) {
	r := &fakeRunner{out: []byte(`{"status":{"code":200}}`)}
	b := newTestBridge(r)

	_, err := b.API(context.Background(), "default", "https://mail.zoho.com/api",
		"GET", "/accounts/1/folders", []string{"limit=10", "start=1"}, nil)
	require.NoError(t, err)

	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{
		"api", "--user", "default",
		"--base-url", "https://mail.zoho.com/api",
		"--method", "GET",
		"--path", "/accounts/1/folders",
		"--query", "limit=10",
		"--query", "start=1",
	}, r.calls[0])
}

func TestAPIIncludesBody(t *testing.T) {
	r := &fakeRunner{out: []byte(`{"status":{"code":200}}`)}
	b := newTestBridge(r)

	_, err := b.API(context.Background(), "default", "https://mail.zoho.com/api",
		"POST", "/accounts/1/messages", nil, []byte(`{"subject":"hi"}`))
	require.NoError(t, err)

	require.Len(t, r.calls, 1)
	assert.Contains(t, r.calls[0], "--body")
	assert.Contains(t, r.calls[0], `{"subject":"hi"}`)
}

func TestSendSkipsEmptyFlags(t *testing.T) {
	r := &fakeRunner{out: []byte("sent\n")}
	b := newTestBridge(r)

	_, err := b.Send(context.Background(), "default", map[string]string{
		"to":      "a@b.com",
		"subject": "Hi",
		"body":    "Hello",
	})
	require.NoError(t, err)

	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"send", "--user", "default", "--to", "a@b.com",
		"--subject", "Hi", "--body", "Hello"}, r.calls[0])
}

func TestBoundedBufferOverflow(t *testing.T) {
	b := &boundedBuffer{limit: 8}

	n, err := b.Write([]byte("12345"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.False(t, b.overflowed)

	n, err = b.Write([]byte("67890"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.True(t, b.overflowed)
	assert.Equal(t, "12345678", b.buf.String())
}
