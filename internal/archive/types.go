package archive

import (
	"errors"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"
)

// Request is one archive invocation: which messages to archive and which
// folder namespace to store them under.
type Request struct {
	// Query is a Gmail search query, e.g. "in:inbox is:unread newer_than:7d".
	Query string `json:"query"`

	// FolderID is the destination folder identifier used in object keys,
	// e.g. a sanitized mailbox address.
	FolderID string `json:"destination_folder_id"`
}

// Validate checks the request for client errors. Absence of either field is
// rejected before any collaborator is called.
func (r Request) Validate() error {
	if r.Query == "" {
		return E(KindBadRequest, "validate request", errors.New("query not provided"))
	}
	if r.FolderID == "" {
		return E(KindBadRequest, "validate request", errors.New("destination folder id not provided"))
	}
	return nil
}

// Result summarizes one completed invocation.
type Result struct {
	Processed int
	Failed    int
	Summary   string
}

// Header is one RFC 2822 header of the archived message.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RecordPayload is the reshaped message payload stored in the archive:
// the headers plus the decoded human-readable body.
type RecordPayload struct {
	Headers []Header `json:"headers"`

	// DecodedBody holds the first successfully decoded text body, or the
	// empty string when no suitable part exists. Never null.
	DecodedBody string `json:"decodedBody"`
}

// Record is the persisted form of a message: a reshaping of the Gmail
// representation plus the decoded body.
type Record struct {
	ID           string        `json:"id"`
	ThreadID     string        `json:"threadId"`
	LabelIDs     []string      `json:"labelIds"`
	Snippet      string        `json:"snippet"`
	HistoryID    uint64        `json:"historyId"`
	InternalDate int64         `json:"internalDate"`
	SizeEstimate int64         `json:"sizeEstimate"`
	Payload      RecordPayload `json:"payload"`
}

// NewRecord reshapes a full Gmail message into its archive form.
func NewRecord(msg *gmail.Message, decodedBody string) Record {
	record := Record{
		ID:           msg.Id,
		ThreadID:     msg.ThreadId,
		LabelIDs:     msg.LabelIds,
		Snippet:      msg.Snippet,
		HistoryID:    msg.HistoryId,
		InternalDate: msg.InternalDate,
		SizeEstimate: msg.SizeEstimate,
		Payload:      RecordPayload{DecodedBody: decodedBody},
	}
	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			if h == nil {
				continue
			}
			record.Payload.Headers = append(record.Payload.Headers, Header{Name: h.Name, Value: h.Value})
		}
	}
	return record
}

// ObjectKey returns the deterministic storage key for a message: a fixed
// namespace prefix, the destination folder and the message identifier.
func ObjectKey(prefix, folderID, messageID string) string {
	if prefix == "" {
		prefix = "gmail"
	}
	return fmt.Sprintf("%s/%s/message_%s.json", prefix, folderID, messageID)
}
