package zmail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMessageRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       UpdateMessageRequest
		wantField string
	}{
		{
			name: "mark read",
			req:  UpdateMessageRequest{Mode: ModeMarkRead, MessageIDs: []string{"1"}},
		},
		{
			name: "archive batch",
			req:  UpdateMessageRequest{Mode: ModeArchive, MessageIDs: []string{"1", "2", "3"}},
		},
		{
			name: "move with destination",
			req:  UpdateMessageRequest{Mode: ModeMove, MessageIDs: []string{"1"}, DestFolderID: "900"},
		},
		{
			name: "tag with label",
			req:  UpdateMessageRequest{Mode: ModeAddTag, MessageIDs: []string{"1"}, LabelID: "42"},
		},
		{
			name:      "unknown mode",
			req:       UpdateMessageRequest{Mode: "shred", MessageIDs: []string{"1"}},
			wantField: "mode",
		},
		{
			name:      "no message ids",
			req:       UpdateMessageRequest{Mode: ModeMarkRead},
			wantField: "messageId",
		},
		{
			name:      "move without destination",
			req:       UpdateMessageRequest{Mode: ModeMove, MessageIDs: []string{"1"}},
			wantField: "destfolderId",
		},
		{
			name:      "addTag without label",
			req:       UpdateMessageRequest{Mode: ModeAddTag, MessageIDs: []string{"1"}},
			wantField: "labelId",
		},
		{
			name:      "removeTag without label",
			req:       UpdateMessageRequest{Mode: ModeRemoveTag, MessageIDs: []string{"1"}},
			wantField: "labelId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestUpdateThreadRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       UpdateThreadRequest
		wantField string
	}{
		{
			name: "archive thread",
			req:  UpdateThreadRequest{Mode: ModeArchive, ThreadID: "990001"},
		},
		{
			name:      "missing thread id",
			req:       UpdateThreadRequest{Mode: ModeMarkRead},
			wantField: "threadId",
		},
		{
			name:      "move without destination",
			req:       UpdateThreadRequest{Mode: ModeMove, ThreadID: "990001"},
			wantField: "destfolderId",
		},
		{
			name:      "unknown mode",
			req:       UpdateThreadRequest{Mode: "", ThreadID: "990001"},
			wantField: "mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestEveryUpdateModeIsAccepted(t *testing.T) {
	modes := []UpdateMode{
		ModeMarkRead, ModeMarkUnread, ModeMove, ModeAddFlag, ModeRemoveFlag,
		ModeAddTag, ModeRemoveTag, ModeArchive, ModeUnarchive, ModeSpam, ModeNotSpam,
	}
	for _, mode := range modes {
		req := UpdateMessageRequest{
			Mode:         mode,
			MessageIDs:   []string{"1"},
			DestFolderID: "900",
			LabelID:      "42",
		}
		assert.NoError(t, req.Validate(), string(mode))
	}
}
