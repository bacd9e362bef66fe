package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/teemow/mailvault/internal/gmail"
	"github.com/teemow/mailvault/internal/google"
	"github.com/teemow/mailvault/internal/instrumentation"
	"github.com/teemow/mailvault/internal/logging"
	"github.com/teemow/mailvault/internal/storage"
)

// recordContentType is the content type of archived objects.
const recordContentType = "application/json"

// CredentialProvider obtains a valid access token for the mailbox,
// refreshing when expired.
type CredentialProvider interface {
	Obtain(ctx context.Context) (string, error)
}

// Service drives the archive pipeline: authenticate once, list the matching
// messages, then fetch, decode and store each one sequentially.
type Service struct {
	Creds   CredentialProvider
	Mailbox gmail.Mailbox
	Store   storage.BlobStore

	// Prefix is the object key namespace prefix (default "gmail").
	Prefix string

	Log     *slog.Logger
	Metrics *instrumentation.Metrics
}

// Run executes one archive invocation. A failure before the per-message
// loop aborts the whole invocation; failures inside the loop are counted
// and the batch continues. Messages are processed strictly sequentially in
// listing order.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	ctx, span := instrumentation.Tracer().Start(ctx, "archive.Run")
	defer span.End()

	log := s.logger().With(logging.Query(req.Query), logging.Folder(req.FolderID))
	start := time.Now()

	_, err := s.Creds.Obtain(ctx)
	s.Metrics.RecordTokenRefresh(ctx, instrumentation.StatusOf(err))
	if err != nil {
		kind := KindAuth
		if errors.Is(err, google.ErrMissingCredentials) {
			kind = KindConfig
		}
		s.Metrics.RecordInvocation(ctx, instrumentation.StatusError, time.Since(start))
		log.ErrorContext(ctx, "authentication failed", logging.Err(err))
		return Result{}, E(kind, "obtain credentials", err)
	}

	summaries, err := gmail.ListAll(ctx, s.Mailbox, req.Query)
	if err != nil {
		s.Metrics.RecordInvocation(ctx, instrumentation.StatusError, time.Since(start))
		log.ErrorContext(ctx, "listing failed", logging.Err(err))
		return Result{}, E(KindList, "list messages", err)
	}
	log.InfoContext(ctx, "messages listed", slog.Int("count", len(summaries)))

	if len(summaries) == 0 {
		s.Metrics.RecordInvocation(ctx, instrumentation.StatusSuccess, time.Since(start))
		return Result{Summary: "no messages found matching the query"}, nil
	}

	var processed, failed int
	for _, sum := range summaries {
		if err := s.archiveMessage(ctx, req.FolderID, sum.ID); err != nil {
			failed++
			s.Metrics.RecordMessage(ctx, instrumentation.ResultFailed)
			log.ErrorContext(ctx, "failed to archive message",
				logging.MessageID(sum.ID),
				slog.String("kind", KindOf(err).String()),
				logging.Err(err))
			continue
		}
		processed++
		s.Metrics.RecordMessage(ctx, instrumentation.ResultProcessed)
	}

	result := Result{
		Processed: processed,
		Failed:    failed,
		Summary:   fmt.Sprintf("processing complete: processed=%d failed=%d", processed, failed),
	}
	s.Metrics.RecordInvocation(ctx, instrumentation.StatusSuccess, time.Since(start))
	log.InfoContext(ctx, "batch complete",
		slog.Int("processed", processed), slog.Int("failed", failed))
	return result, nil
}

// archiveMessage runs the fetch, decode and store steps for one message.
// The returned error carries the kind of the failed step.
func (s *Service) archiveMessage(ctx context.Context, folderID, id string) error {
	ctx, span := instrumentation.Tracer().Start(ctx, "archive.Message")
	defer span.End()

	msg, err := s.Mailbox.Get(ctx, id)
	if err != nil {
		return E(KindFetch, "fetch message", err)
	}

	body, err := gmail.ExtractBody(msg.Payload)
	if err != nil {
		return E(KindDecode, "decode body", err)
	}

	record := NewRecord(msg, body)
	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return E(KindWrite, "encode record", err)
	}

	key := ObjectKey(s.Prefix, folderID, id)
	err = s.Store.Put(ctx, key, data, recordContentType)
	s.Metrics.RecordStoragePut(ctx, instrumentation.StatusOf(err))
	if err != nil {
		return E(KindWrite, "store record", err)
	}

	s.logger().DebugContext(ctx, "message archived", logging.MessageID(id), logging.Key(key))
	return nil
}

func (s *Service) logger() *slog.Logger {
	if s.Log == nil {
		return logging.WithService(slog.Default(), "archive")
	}
	return logging.WithService(s.Log, "archive")
}
