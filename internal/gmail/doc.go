// Package gmail provides the narrow Gmail API surface used by mailvault:
// paginated message listing, full-format message retrieval and body
// extraction.
//
// The Mailbox interface decouples the archive service from the Gmail SDK;
// Client is the production adapter over google.golang.org/api/gmail/v1.
// Listing transparently follows pagination cursors via ListAll, and
// ExtractBody decodes the first suitable text body from a message payload,
// preferring text/plain over text/html.
package gmail
