package gmail

import (
	"context"

	gmail "google.golang.org/api/gmail/v1"
)

// Summary is the lightweight message handle returned by listing.
type Summary struct {
	ID       string
	ThreadID string
}

// Page is one page of a message listing. A non-empty NextPageToken means
// more pages follow.
type Page struct {
	Summaries     []Summary
	NextPageToken string
}

// Mailbox is the narrow Gmail surface mailvault requires. The archive
// service depends on this interface, not on the SDK, so tests can inject
// fakes.
type Mailbox interface {
	// List returns one page of message summaries matching the query.
	List(ctx context.Context, query, pageToken string) (Page, error)

	// Get retrieves the complete message representation: headers, body
	// parts and metadata.
	Get(ctx context.Context, id string) (*gmail.Message, error)
}
