package archive_tools

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/mailvault/internal/archive"
)

type fakeRunner struct {
	result  archive.Result
	err     error
	calls   int
	lastReq archive.Request
}

func (f *fakeRunner) Run(_ context.Context, req archive.Request) (archive.Result, error) {
	f.calls++
	f.lastReq = req
	return f.result, f.err
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestHandleArchiveMessages(t *testing.T) {
	runner := &fakeRunner{
		result: archive.Result{
			Processed: 2,
			Failed:    0,
			Summary:   "processing complete: processed=2 failed=0",
		},
	}

	result, err := handleArchiveMessages(context.Background(), toolRequest(map[string]interface{}{
		"query":                 "from:billing@example.com",
		"destination_folder_id": "invoices",
	}), runner)
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "from:billing@example.com", runner.lastReq.Query)
	assert.Equal(t, "invoices", runner.lastReq.FolderID)
	assert.Contains(t, textContent(t, result), "processed 2, failed 0")
}

func TestHandleArchiveMessagesMissingArguments(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "missing query",
			args: map[string]interface{}{"destination_folder_id": "invoices"},
			want: "query is required",
		},
		{
			name: "empty query",
			args: map[string]interface{}{"query": "", "destination_folder_id": "invoices"},
			want: "query is required",
		},
		{
			name: "missing folder",
			args: map[string]interface{}{"query": "from:x"},
			want: "destination_folder_id is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runner := &fakeRunner{}
			result, err := handleArchiveMessages(context.Background(), toolRequest(tc.args), runner)
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Equal(t, 0, runner.calls)
			assert.Contains(t, textContent(t, result), tc.want)
		})
	}
}

func TestHandleArchiveMessagesRunnerError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("token refresh failed")}

	result, err := handleArchiveMessages(context.Background(), toolRequest(map[string]interface{}{
		"query":                 "from:x",
		"destination_folder_id": "f",
	}), runner)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "token refresh failed")
}

func TestRegisterArchiveToolsRequiresRunner(t *testing.T) {
	err := RegisterArchiveTools(nil, nil)
	assert.Error(t, err)
}
