package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Versatly/zoho-mail-cli/internal/output"
	"github.com/Versatly/zoho-mail-cli/internal/zmail"
)

// fakeMailService records calls and replays canned results
type fakeMailService struct {
	folders     []zmail.Folder
	messages    []zmail.MessageSummary
	deleteCalls []string
	updateCalls []*zmail.UpdateMessageRequest
	threadCalls []*zmail.UpdateThreadRequest
	sendCalls   []*zmail.SendMessageRequest
	emptyCalls  []string
	failWith    error
}

func (f *fakeMailService) ListAccounts(ctx context.Context) ([]zmail.Account, error) {
	return nil, f.failWith
}

func (f *fakeMailService) ListFolders(ctx context.Context) ([]zmail.Folder, error) {
	return f.folders, f.failWith
}

func (f *fakeMailService) GetFolderByName(ctx context.Context, name string) (*zmail.Folder, error) {
	for i := range f.folders {
		if f.folders[i].FolderName == name {
			return &f.folders[i], nil
		}
	}
	return nil, errors.New("folder not found: " + name)
}

func (f *fakeMailService) CreateFolder(ctx context.Context, name, parentID string) (*zmail.Folder, error) {
	return &zmail.Folder{FolderID: "new", FolderName: name, ParentFolderID: parentID}, f.failWith
}

func (f *fakeMailService) RenameFolder(ctx context.Context, folderID, newName string) error {
	return f.failWith
}

func (f *fakeMailService) MoveFolder(ctx context.Context, folderID, newParentID string) error {
	return f.failWith
}

func (f *fakeMailService) EmptyFolder(ctx context.Context, folderID string) error {
	f.emptyCalls = append(f.emptyCalls, folderID)
	return f.failWith
}

func (f *fakeMailService) MarkFolderRead(ctx context.Context, folderID string) error {
	return f.failWith
}

func (f *fakeMailService) DeleteFolder(ctx context.Context, folderID string) error {
	f.deleteCalls = append(f.deleteCalls, folderID)
	return f.failWith
}

func (f *fakeMailService) ListLabels(ctx context.Context) ([]zmail.Label, error) {
	return nil, f.failWith
}

func (f *fakeMailService) CreateLabel(ctx context.Context, name, color string) (*zmail.Label, error) {
	return &zmail.Label{LabelID: "42", LabelName: name, LabelColor: color}, f.failWith
}

func (f *fakeMailService) UpdateLabel(ctx context.Context, labelID, name, color string) error {
	return f.failWith
}

func (f *fakeMailService) DeleteLabel(ctx context.Context, labelID string) error {
	f.deleteCalls = append(f.deleteCalls, labelID)
	return f.failWith
}

func (f *fakeMailService) ListMessages(ctx context.Context, folderID string, start, limit int) ([]zmail.MessageSummary, error) {
	return f.messages, f.failWith
}

func (f *fakeMailService) SearchMessages(ctx context.Context, searchKey string, start, limit int) ([]zmail.MessageSummary, error) {
	return f.messages, f.failWith
}

func (f *fakeMailService) GetMessageContent(ctx context.Context, folderID, messageID string) (*zmail.MessageContent, error) {
	return &zmail.MessageContent{MessageID: messageID, Content: "<p>hi</p>"}, f.failWith
}

func (f *fakeMailService) SendMessage(ctx context.Context, req *zmail.SendMessageRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	f.sendCalls = append(f.sendCalls, req)
	return f.failWith
}

func (f *fakeMailService) UpdateMessages(ctx context.Context, req *zmail.UpdateMessageRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	f.updateCalls = append(f.updateCalls, req)
	return f.failWith
}

func (f *fakeMailService) UpdateThread(ctx context.Context, req *zmail.UpdateThreadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	f.threadCalls = append(f.threadCalls, req)
	return f.failWith
}

func (f *fakeMailService) DeleteMessage(ctx context.Context, folderID, messageID string) error {
	f.deleteCalls = append(f.deleteCalls, folderID+"/"+messageID)
	return f.failWith
}

var _ zmail.MailService = (*fakeMailService)(nil)

func newTestHarness(fake *fakeMailService) (*ServiceProvider, *FormatterProvider, *bytes.Buffer, *bytes.Buffer) {
	sp := &ServiceProvider{mail: fake}
	var out, errOut bytes.Buffer
	fp := &FormatterProvider{Formatter: output.NewWithWriters("compact", &out, &errOut)}
	return sp, fp, &out, &errOut
}

func TestFoldersDeleteWithoutForceIsNoOp(t *testing.T) {
	fake := &fakeMailService{}
	sp, fp, out, errOut := newTestHarness(fake)

	cmd := &FoldersDeleteCmd{Folder: "F1"}
	err := cmd.Run(sp, fp, &Globals{Force: false})

	require.NoError(t, err)
	assert.Empty(t, fake.deleteCalls, "no network call without --force")
	assert.Contains(t, out.String(), "Refusing to delete")
	assert.Contains(t, errOut.String(), "--force")
}

func TestFoldersDeleteWithForce(t *testing.T) {
	fake := &fakeMailService{folders: []zmail.Folder{{FolderID: "900", FolderName: "F1"}}}
	sp, fp, _, _ := newTestHarness(fake)

	cmd := &FoldersDeleteCmd{Folder: "F1"}
	err := cmd.Run(sp, fp, &Globals{Force: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"900"}, fake.deleteCalls)
}

func TestFoldersDeleteWithForceSurfacesAPIError(t *testing.T) {
	fake := &fakeMailService{failWith: &zmail.APIError{Code: 404, Description: "Invalid folder"}}
	sp, fp, _, _ := newTestHarness(fake)

	cmd := &FoldersDeleteCmd{Folder: "900"}
	err := cmd.Run(sp, fp, &Globals{Force: true})

	require.Error(t, err)
	var cliErr *output.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Contains(t, cliErr.Message, "Invalid folder")
}

func TestFoldersEmptyWithoutForceIsNoOp(t *testing.T) {
	fake := &fakeMailService{}
	sp, fp, _, _ := newTestHarness(fake)

	cmd := &FoldersEmptyCmd{Folder: "F1"}
	require.NoError(t, cmd.Run(sp, fp, &Globals{Force: false}))
	assert.Empty(t, fake.emptyCalls)
}

func TestMailSendBuildsRequest(t *testing.T) {
	fake := &fakeMailService{}
	sp, fp, out, _ := newTestHarness(fake)

	cmd := &MailSendCmd{To: "a@b.com", Subject: "Hi", Body: "Hello", Format: "plaintext"}
	require.NoError(t, cmd.Run(sp, fp))

	require.Len(t, fake.sendCalls, 1)
	req := fake.sendCalls[0]
	assert.Equal(t, "a@b.com", req.ToAddress)
	assert.Equal(t, "Hi", req.Subject)
	assert.Equal(t, "Hello", req.Content)
	assert.Equal(t, "plaintext", req.MailFormat)
	assert.Contains(t, out.String(), "Message sent")
}

func TestMailSendMissingRecipientFailsValidation(t *testing.T) {
	fake := &fakeMailService{}
	sp, fp, _, _ := newTestHarness(fake)

	cmd := &MailSendCmd{Subject: "Hi", Body: "Hello"}
	err := cmd.Run(sp, fp)

	require.Error(t, err)
	assert.Empty(t, fake.sendCalls)
}

func TestMailMarkReadBatch(t *testing.T) {
	fake := &fakeMailService{}
	sp, fp, _, _ := newTestHarness(fake)

	cmd := &MailMarkReadCmd{updateFlags{MessageIDs: []string{"1", "2"}}}
	require.NoError(t, cmd.Run(sp, fp))

	require.Len(t, fake.updateCalls, 1)
	assert.Equal(t, zmail.ModeMarkRead, fake.updateCalls[0].Mode)
	assert.Equal(t, []string{"1", "2"}, fake.updateCalls[0].MessageIDs)
}

func TestMailArchiveThread(t *testing.T) {
	fake := &fakeMailService{}
	sp, fp, _, _ := newTestHarness(fake)

	cmd := &MailArchiveCmd{updateFlags{MessageIDs: []string{"990001"}, Thread: true}}
	require.NoError(t, cmd.Run(sp, fp))

	assert.Empty(t, fake.updateCalls)
	require.Len(t, fake.threadCalls, 1)
	assert.Equal(t, zmail.ModeArchive, fake.threadCalls[0].Mode)
	assert.Equal(t, "990001", fake.threadCalls[0].ThreadID)
}

func TestMailThreadRejectsMultipleIDs(t *testing.T) {
	fake := &fakeMailService{}
	sp, fp, _, _ := newTestHarness(fake)

	cmd := &MailFlagCmd{updateFlags{MessageIDs: []string{"1", "2"}, Thread: true}}
	err := cmd.Run(sp, fp)

	require.Error(t, err)
	assert.Empty(t, fake.threadCalls)
}

func TestMailMoveResolvesFolderName(t *testing.T) {
	fake := &fakeMailService{folders: []zmail.Folder{{FolderID: "901", FolderName: "Archive"}}}
	sp, fp, _, _ := newTestHarness(fake)

	cmd := &MailMoveCmd{updateFlags: updateFlags{MessageIDs: []string{"1"}}, Folder: "Archive"}
	require.NoError(t, cmd.Run(sp, fp))

	require.Len(t, fake.updateCalls, 1)
	assert.Equal(t, zmail.ModeMove, fake.updateCalls[0].Mode)
	assert.Equal(t, "901", fake.updateCalls[0].DestFolderID)
}

func TestMailDeleteWithoutForceIsNoOp(t *testing.T) {
	fake := &fakeMailService{}
	sp, fp, _, _ := newTestHarness(fake)

	cmd := &MailDeleteCmd{MessageID: "17"}
	require.NoError(t, cmd.Run(nil, sp, fp, &Globals{Force: false}))
	assert.Empty(t, fake.deleteCalls)
}

func TestWrapServiceErrorCapability(t *testing.T) {
	err := wrapServiceError("send message", &zmail.CapabilityError{Op: zmail.CapFolders})
	var cliErr *output.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.NotEmpty(t, cliErr.Hint)
}

func TestGlobalsResolvedOutput(t *testing.T) {
	assert.Equal(t, "json", (&Globals{JSON: true, Output: "table"}).ResolvedOutput())
	assert.Equal(t, "compact", (&Globals{Output: "compact"}).ResolvedOutput())
	// auto in a test run (no TTY) resolves to compact
	assert.Equal(t, "compact", (&Globals{Output: "auto"}).ResolvedOutput())
}

func TestGlobalsApplyOutputDefault(t *testing.T) {
	tests := []struct {
		name       string
		globals    Globals
		configured string
		expected   string
	}{
		{name: "config default fills auto", globals: Globals{Output: "auto"}, configured: "json", expected: "json"},
		{name: "explicit flag wins", globals: Globals{Output: "table"}, configured: "json", expected: "table"},
		{name: "json shorthand wins", globals: Globals{JSON: true, Output: "auto"}, configured: "table", expected: "json"},
		{name: "empty config keeps auto", globals: Globals{Output: "auto"}, configured: "", expected: "compact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.globals.ApplyOutputDefault(tt.configured)
			assert.Equal(t, tt.expected, tt.globals.ResolvedOutput())
		})
	}
}
