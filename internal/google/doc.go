// Package google provides the OAuth2 credential provider for the Gmail API.
//
// The service path never runs an interactive OAuth flow and never touches
// disk: the long-lived refresh token, client ID and client secret arrive via
// configuration, and this package only performs the refresh exchange to
// obtain a short-lived access token for the current invocation.
package google
