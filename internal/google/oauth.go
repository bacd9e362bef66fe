package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/teemow/mailvault/internal/logging"
)

// ErrMissingCredentials indicates that the refresh credential is incomplete.
// Without refresh token, client ID and client secret no access token can
// ever be obtained, so this is a configuration error, not a transient one.
var ErrMissingCredentials = errors.New("missing Gmail credentials")

// Credentials is the long-lived OAuth2 refresh credential for a mailbox.
// It is constructed from configuration per invocation and never persisted.
type Credentials struct {
	RefreshToken string
	ClientID     string
	ClientSecret string

	// TokenURL overrides the token endpoint. Empty means the Google
	// OAuth2 endpoint; tests point this at a local server.
	TokenURL string
}

// Validate checks that the credential is complete enough to refresh.
func (c Credentials) Validate() error {
	var missing []string
	if c.RefreshToken == "" {
		missing = append(missing, "refresh token")
	}
	if c.ClientID == "" {
		missing = append(missing, "client ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// Provider exchanges the refresh credential for short-lived access tokens.
// The access token is held in memory for the remainder of the invocation
// and refreshed transparently when expired.
type Provider struct {
	creds Credentials
	log   *slog.Logger

	ts oauth2.TokenSource
}

// NewProvider creates a credential provider for the given credentials.
func NewProvider(creds Credentials, log *slog.Logger) *Provider {
	if log == nil {
		log = slog.Default()
	}
	return &Provider{
		creds: creds,
		log:   logging.WithService(log, "google"),
	}
}

// TokenSource returns an oauth2.TokenSource seeded with the refresh token.
// The seed token carries an expiry in the past so the first Token call
// performs the refresh exchange against the token endpoint.
func (p *Provider) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	if err := p.creds.Validate(); err != nil {
		return nil, err
	}
	if p.ts != nil {
		return p.ts, nil
	}

	conf := &oauth2.Config{
		ClientID:     p.creds.ClientID,
		ClientSecret: p.creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailReadonlyScope},
	}
	if p.creds.TokenURL != "" {
		conf.Endpoint = oauth2.Endpoint{TokenURL: p.creds.TokenURL}
	}

	p.ts = conf.TokenSource(ctx, &oauth2.Token{
		TokenType:    "Bearer",
		RefreshToken: p.creds.RefreshToken,
		Expiry:       time.Unix(1, 0),
	})
	return p.ts, nil
}

// Obtain returns a valid access token, refreshing if necessary.
func (p *Provider) Obtain(ctx context.Context) (string, error) {
	ts, err := p.TokenSource(ctx)
	if err != nil {
		return "", err
	}

	token, err := ts.Token()
	if err != nil {
		return "", fmt.Errorf("failed to refresh access token: %w", err)
	}

	p.log.DebugContext(ctx, "access token refreshed",
		slog.String("token", logging.SanitizeToken(token.AccessToken)))
	return token.AccessToken, nil
}

// NewGmailService builds a Gmail API service authenticated by the provider.
func NewGmailService(ctx context.Context, p *Provider) (*gmail.Service, error) {
	ts, err := p.TokenSource(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return svc, nil
}
