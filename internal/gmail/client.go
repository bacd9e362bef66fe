package gmail

import (
	"context"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"
)

// Client adapts the Gmail Users service to the Mailbox interface.
type Client struct {
	svc  *gmail.UsersService
	user string
}

// NewClient wraps an authenticated Gmail service for the given user.
// The user is usually "me", meaning the authenticated account.
func NewClient(svc *gmail.Service, user string) *Client {
	if user == "" {
		user = "me"
	}
	return &Client{
		svc:  svc.Users,
		user: user,
	}
}

// User returns the mailbox user this client is associated with.
func (c *Client) User() string {
	return c.user
}

// List returns one page of message summaries matching the query.
func (c *Client) List(ctx context.Context, query, pageToken string) (Page, error) {
	req := c.svc.Messages.List(c.user).Q(query)
	if pageToken != "" {
		req = req.PageToken(pageToken)
	}

	res, err := req.Context(ctx).Do()
	if err != nil {
		return Page{}, fmt.Errorf("failed to list messages: %w", err)
	}

	page := Page{NextPageToken: res.NextPageToken}
	for _, m := range res.Messages {
		page.Summaries = append(page.Summaries, Summary{ID: m.Id, ThreadID: m.ThreadId})
	}
	return page, nil
}

// Get retrieves a full message, requesting the complete representation
// rather than a headers-only or raw-encoding variant.
func (c *Client) Get(ctx context.Context, id string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get(c.user, id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}
	return msg, nil
}

// ListAll follows pagination cursors until exhaustion and returns the union
// of all pages' summaries in page order. A fresh call re-issues the full
// paginated scan; there is no cursor to resume from.
func ListAll(ctx context.Context, m Mailbox, query string) ([]Summary, error) {
	var all []Summary
	pageToken := ""
	for {
		page, err := m.List(ctx, query, pageToken)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Summaries...)
		if page.NextPageToken == "" {
			return all, nil
		}
		pageToken = page.NextPageToken
	}
}
