// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across mailvault so that log
// entries from the credential provider, the Gmail client, the storage layer
// and the archive service can be correlated, and helpers that keep sensitive
// values (tokens, mailbox users) out of the logs.
package logging
