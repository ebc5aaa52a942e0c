package zmail

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexBoolUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "bool true", input: `true`, expected: true},
		{name: "bool false", input: `false`, expected: false},
		{name: "string true", input: `"true"`, expected: true},
		{name: "string false", input: `"false"`, expected: false},
		{name: "string one", input: `"1"`, expected: true},
		{name: "string zero", input: `"0"`, expected: false},
		{name: "number one", input: `1`, expected: true},
		{name: "number zero", input: `0`, expected: false},
		{name: "null", input: `null`, expected: false},
		{name: "empty string", input: `""`, expected: false},
		{name: "unrelated string", input: `"yes"`, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexBool
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.expected, bool(f))
		})
	}
}

func TestFlexBoolAbsentField(t *testing.T) {
	var msg MessageSummary
	require.NoError(t, json.Unmarshal([]byte(`{"messageId":"1"}`), &msg))
	assert.False(t, bool(msg.IsRead))
	assert.False(t, bool(msg.Flagged))
	assert.False(t, bool(msg.HasAttachment))
}

func TestFlexBoolMarshalsAsBool(t *testing.T) {
	out, err := json.Marshal(FlexBool(true))
	require.NoError(t, err)
	assert.Equal(t, `true`, string(out))

	out, err = json.Marshal(FlexBool(false))
	require.NoError(t, err)
	assert.Equal(t, `false`, string(out))
}

func TestFlexInt64Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{name: "raw number", input: `1700000000000`, expected: 1700000000000},
		{name: "numeric string", input: `"1700000000000"`, expected: 1700000000000},
		{name: "zero", input: `0`, expected: 0},
		{name: "null", input: `null`, expected: 0},
		{name: "empty string", input: `""`, expected: 0},
		{name: "garbage string", input: `"abc"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexInt64
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, int64(f))
		})
	}
}

func TestMessageSummaryNormalization(t *testing.T) {
	// Mixed encodings in one payload, the way the server actually sends them
	payload := `{
		"messageId": "17000001",
		"threadId": "990001",
		"subject": "Quarterly report",
		"fromAddress": "alice@example.com",
		"receivedTime": "1700000000000",
		"status": "0",
		"flagid": 1,
		"hasAttachment": "true"
	}`

	var msg MessageSummary
	require.NoError(t, json.Unmarshal([]byte(payload), &msg))

	assert.Equal(t, "17000001", msg.MessageID)
	assert.Equal(t, int64(1700000000000), int64(msg.ReceivedTime))
	assert.False(t, bool(msg.IsRead))
	assert.True(t, bool(msg.Flagged))
	assert.True(t, bool(msg.HasAttachment))
}

func TestSendMessageRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SendMessageRequest
		wantErr string
	}{
		{
			name: "valid request",
			req:  SendMessageRequest{ToAddress: "bob@example.com", Subject: "hi", Content: "hello"},
		},
		{
			name:    "missing recipient",
			req:     SendMessageRequest{Subject: "hi", Content: "hello"},
			wantErr: "to",
		},
		{
			name:    "missing subject",
			req:     SendMessageRequest{ToAddress: "bob@example.com", Content: "hello"},
			wantErr: "subject",
		},
		{
			name:    "missing body",
			req:     SendMessageRequest{ToAddress: "bob@example.com", Subject: "hi"},
			wantErr: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Field)
		})
	}
}
