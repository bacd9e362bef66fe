package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/mailvault/internal/archive"
	"github.com/teemow/mailvault/internal/config"
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

func authedConfig() config.Config {
	return config.Config{
		Bucket:       "archive-bucket",
		UserID:       "me",
		Prefix:       "gmail",
		RefreshToken: "refresh-token",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}
}

func doRequest(t *testing.T, h http.Handler, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/v1/archive", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestArchiveHandlerMethodNotAllowed(t *testing.T) {
	runner := &fakeRunner{}
	h := NewArchiveHandler(authedConfig(), runner, nil)

	rec := doRequest(t, h, http.MethodGet, "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, 0, runner.calls)
}

func TestArchiveHandlerInvalidBody(t *testing.T) {
	runner := &fakeRunner{}
	h := NewArchiveHandler(authedConfig(), runner, nil)

	rec := doRequest(t, h, http.MethodPost, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, runner.calls)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid request body", body["error"])
}

func TestArchiveHandlerMissingAuthConfig(t *testing.T) {
	cfg := authedConfig()
	cfg.RefreshToken = ""
	cfg.ClientSecret = ""
	runner := &fakeRunner{}
	h := NewArchiveHandler(cfg, runner, nil)

	rec := doRequest(t, h, http.MethodPost, `{"query":"from:x","destination_folder_id":"f"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The runner is never invoked when the deployment lacks credentials.
	assert.Equal(t, 0, runner.calls)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "configuration error")
	assert.Contains(t, body["error"], config.EnvRefreshToken)
	assert.Contains(t, body["error"], config.EnvClientSecret)
}

func TestArchiveHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "bad request kind maps to 400",
			err:        archive.E(archive.KindBadRequest, "run", errors.New("query not provided")),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "list kind maps to 500",
			err:        archive.E(archive.KindList, "run", errors.New("rate limited")),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unclassified error maps to 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runner := &fakeRunner{err: tc.err}
			h := NewArchiveHandler(authedConfig(), runner, nil)

			rec := doRequest(t, h, http.MethodPost, `{"query":"from:x","destination_folder_id":"f"}`)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, 1, runner.calls)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body["error"], tc.err.Error())
		})
	}
}

func TestArchiveHandlerSuccess(t *testing.T) {
	runner := &fakeRunner{
		result: archive.Result{
			Processed: 4,
			Failed:    1,
			Summary:   "processing complete: processed=4 failed=1",
		},
	}
	h := NewArchiveHandler(authedConfig(), runner, nil)

	rec := doRequest(t, h, http.MethodPost, `{"query":"from:billing@example.com","destination_folder_id":"invoices"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "from:billing@example.com", runner.lastReq.Query)
	assert.Equal(t, "invoices", runner.lastReq.FolderID)

	var body successBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "processing complete: processed=4 failed=1", body.Message)
	assert.Equal(t, 4, body.Processed)
	assert.Equal(t, 1, body.Failed)
}

func TestNewMuxRoutes(t *testing.T) {
	runner := &fakeRunner{result: archive.Result{Summary: "no messages found matching the query"}}
	h := NewArchiveHandler(authedConfig(), runner, nil)
	health := NewHealthChecker()
	mux := NewMux(h, health)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/archive", strings.NewReader(`{"query":"q","destination_folder_id":"f"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
