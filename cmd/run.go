package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teemow/mailvault/internal/archive"
	"github.com/teemow/mailvault/internal/config"
	"github.com/teemow/mailvault/internal/gmail"
	"github.com/teemow/mailvault/internal/google"
	"github.com/teemow/mailvault/internal/instrumentation"
	"github.com/teemow/mailvault/internal/logging"
	"github.com/teemow/mailvault/internal/storage"
)

func newRunCmd() *cobra.Command {
	var (
		query     string
		folderID  string
		debugMode bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Archive messages matching a Gmail query to the configured bucket",
		Long: `Fetch all Gmail messages matching the given search query and write each
one as an indented JSON document to the configured S3 bucket under
gmail/<folder>/message_<id>.json.

Configuration is taken from the environment:
  S3_BUCKET_NAME  destination bucket (required)
  REFRESH_TOKEN   Gmail OAuth2 refresh token (required)
  CLIENT_ID       Google OAuth2 client ID (required)
  CLIENT_SECRET   Google OAuth2 client secret (required)
  GMAIL_USER_ID   mailbox owner (default: "me")
  AWS_REGION      S3 region (default: SDK resolution)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if debugMode {
				level = slog.LevelDebug
			}
			log := logging.New(level)

			ctx, cancel := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.ValidateAuth(); err != nil {
				return err
			}

			instrConfig := instrumentation.DefaultConfig()
			instrConfig.ServiceVersion = version
			provider, err := instrumentation.NewProvider(ctx, instrConfig)
			if err != nil {
				return fmt.Errorf("failed to create instrumentation provider: %w", err)
			}
			defer func() {
				if err := provider.Shutdown(ctx); err != nil {
					log.Error("instrumentation shutdown failed", logging.Err(err))
				}
			}()

			svc, err := newArchiveService(ctx, cfg, log, provider.Metrics())
			if err != nil {
				return err
			}

			result, err := svc.Run(ctx, archive.Request{Query: query, FolderID: folderID})
			if err != nil {
				return err
			}

			fmt.Println(result.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Gmail search query (e.g. 'from:billing@example.com')")
	cmd.Flags().StringVar(&folderID, "folder", "", "Destination folder segment for storage keys")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("query")
	_ = cmd.MarkFlagRequired("folder")

	return cmd
}

// newArchiveService assembles the archive pipeline from configuration:
// credential provider, Gmail client and S3 store.
func newArchiveService(ctx context.Context, cfg config.Config, log *slog.Logger, metrics *instrumentation.Metrics) (*archive.Service, error) {
	creds := google.NewProvider(google.Credentials{
		RefreshToken: cfg.RefreshToken,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	}, log)

	gmailSvc, err := google.NewGmailService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	store, err := storage.NewS3Store(ctx, cfg.Bucket, cfg.Region, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 store: %w", err)
	}

	return &archive.Service{
		Creds:   creds,
		Mailbox: gmail.NewClient(gmailSvc, cfg.UserID),
		Store:   store,
		Prefix:  cfg.Prefix,
		Log:     log,
		Metrics: metrics,
	}, nil
}
