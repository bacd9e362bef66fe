package google

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		missing []string
	}{
		{
			name: "complete",
			creds: Credentials{
				RefreshToken: "1//refresh",
				ClientID:     "id",
				ClientSecret: "secret",
			},
		},
		{
			name: "missing refresh token",
			creds: Credentials{
				ClientID:     "id",
				ClientSecret: "secret",
			},
			missing: []string{"refresh token"},
		},
		{
			name:    "all missing",
			creds:   Credentials{},
			missing: []string{"refresh token", "client ID", "client secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if len(tt.missing) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingCredentials)
			for _, field := range tt.missing {
				assert.Contains(t, err.Error(), field)
			}
		})
	}
}

func TestObtainRefreshesToken(t *testing.T) {
	var refreshCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, "1//refresh", r.Form.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"ya29.fresh","token_type":"Bearer","expires_in":3600}`)
	}))
	defer srv.Close()

	p := NewProvider(Credentials{
		RefreshToken: "1//refresh",
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     srv.URL,
	}, nil)

	token, err := p.Obtain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ya29.fresh", token)
	assert.Equal(t, 1, refreshCalls)

	// A second Obtain within the token lifetime reuses the held token.
	token, err = p.Obtain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ya29.fresh", token)
	assert.Equal(t, 1, refreshCalls)
}

func TestObtainRefreshRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant"}`)
	}))
	defer srv.Close()

	p := NewProvider(Credentials{
		RefreshToken: "1//revoked",
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     srv.URL,
	}, nil)

	_, err := p.Obtain(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to refresh access token")
}

func TestObtainMissingCredentials(t *testing.T) {
	p := NewProvider(Credentials{ClientID: "id"}, nil)

	_, err := p.Obtain(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}
