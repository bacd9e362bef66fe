package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable names. These match the deployment contract: auth
// secrets and the bucket are provisioned by the invoking environment, never
// read from disk.
const (
	EnvBucket       = "S3_BUCKET_NAME"
	EnvUserID       = "GMAIL_USER_ID"
	EnvRefreshToken = "REFRESH_TOKEN"
	EnvClientID     = "CLIENT_ID"
	EnvClientSecret = "CLIENT_SECRET"
	EnvPrefix       = "ARCHIVE_PREFIX"
	EnvRegion       = "AWS_REGION"
)

// DefaultUserID is the Gmail user identifier meaning "the authenticated user".
const DefaultUserID = "me"

// DefaultPrefix is the fixed namespace prefix for archived objects.
const DefaultPrefix = "gmail"

// Config holds the environment-sourced configuration for one invocation.
// It is constructed once at invocation entry and threaded through every
// component; there is no process-wide configuration state.
type Config struct {
	// Bucket is the destination S3 bucket for archived messages.
	Bucket string

	// UserID is the Gmail user whose mailbox is queried (default "me").
	UserID string

	// Prefix is the key namespace prefix for archived objects.
	Prefix string

	// Region is the AWS region for the S3 client. Empty means the SDK's
	// own resolution (env, shared config, IMDS) applies.
	Region string

	// RefreshToken, ClientID and ClientSecret form the OAuth2 refresh
	// credential. All three must be present for any access token to be
	// obtainable.
	RefreshToken string
	ClientID     string
	ClientSecret string
}

// Load reads the configuration from the environment.
func Load() Config {
	v := viper.New()
	v.SetDefault(EnvUserID, DefaultUserID)
	v.SetDefault(EnvPrefix, DefaultPrefix)
	for _, key := range []string{
		EnvBucket, EnvUserID, EnvRefreshToken,
		EnvClientID, EnvClientSecret, EnvPrefix, EnvRegion,
	} {
		// BindEnv never fails when a key is given.
		_ = v.BindEnv(key)
	}

	return Config{
		Bucket:       v.GetString(EnvBucket),
		UserID:       v.GetString(EnvUserID),
		Prefix:       v.GetString(EnvPrefix),
		Region:       v.GetString(EnvRegion),
		RefreshToken: v.GetString(EnvRefreshToken),
		ClientID:     v.GetString(EnvClientID),
		ClientSecret: v.GetString(EnvClientSecret),
	}
}

// Validate checks the non-secret parts of the configuration.
func (c Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("missing required environment variable %s", EnvBucket)
	}
	return nil
}

// ValidateAuth checks that the OAuth refresh credential is complete.
// The returned error names every missing variable so a misconfigured
// deployment can be fixed in one pass.
func (c Config) ValidateAuth() error {
	var missing []string
	if c.RefreshToken == "" {
		missing = append(missing, EnvRefreshToken)
	}
	if c.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if c.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing Gmail auth environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
