package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/agsregistration/internal/client/client"
	"github.com/dmitrijs2005/agsregistration/internal/client/config"
	"github.com/dmitrijs2005/agsregistration/internal/client/drafts"
	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/client/services"
	"github.com/dmitrijs2005/agsregistration/internal/client/wizard"
	"github.com/dmitrijs2005/agsregistration/internal/logging"
)

const (
	BackendAPI = "api"
	BackendS3  = "s3"

	LogBackendSlog = "slog"
	LogBackendZap  = "zap"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	store   drafts.Store
	uploads *services.UploadManager
	wizard  *wizard.Wizard

	reader  *bufio.Reader
	out     io.Writer
	prompts io.Writer

	closers []func() error
}

// NewApp wires the draft database, the upload backend and the wizard from
// c. Interactive input is read from stdin.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log, syncLog, err := newLogger(c)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.DraftDBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DraftDBPath, "err", err)
		return nil, err
	}

	api := client.NewAPIClient(c.APIBaseURL, c.RequestTimeout, log)

	uploader, err := newUploader(ctx, c, api, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := drafts.NewSQLiteStore(db.Drafts, log)
	uploads := services.NewUploadManager(uploader, c.MaxAttachmentSize, log)
	submitter := services.NewSubmitter(api, store, log)

	a := newApp(c, log, store, uploads, submitter, bufio.NewReader(os.Stdin), os.Stdout)
	a.prompts = promptWriter(os.Stdout)
	a.closers = append(a.closers, db.Close)
	if syncLog != nil {
		a.closers = append(a.closers, syncLog)
	}
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, store drafts.Store, uploads *services.UploadManager, submitter wizard.Submitter, r *bufio.Reader, out io.Writer) *App {
	a := &App{
		config:  c,
		log:     log,
		store:   store,
		uploads: uploads,
		wizard:  wizard.New(store, uploads, submitter, c.MaxAttachmentSize, log),
		reader:  r,
		out:     out,
		prompts: out,
	}
	uploads.Progress = a.reportProgress
	return a
}

// newLogger builds the configured backend. The returned func flushes it
// and is nil when nothing needs flushing.
func newLogger(c *config.Config) (logging.Logger, func() error, error) {
	switch c.LogBackend {
	case LogBackendZap:
		z, err := logging.NewZapLogger(c.Environment, c.LogLevel)
		if err != nil {
			return nil, nil, err
		}
		// Sync on a console sink commonly reports EINVAL; nothing to act on.
		return z, func() error { _ = z.Sync(); return nil }, nil
	case LogBackendSlog, "":
		return logging.NewTextSlogLogger(os.Stderr, c.LogLevel), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown log backend %q", c.LogBackend)
}

// newUploader picks where attachments go: the registration API itself or
// an S3 bucket.
func newUploader(ctx context.Context, c *config.Config, api *client.APIClient, log logging.Logger) (services.Uploader, error) {
	switch c.UploadBackend {
	case BackendAPI, "":
		return api, nil
	case BackendS3:
		return client.NewS3Uploader(ctx, client.S3Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		}, log)
	}
	return nil, fmt.Errorf("unknown upload backend %q", c.UploadBackend)
}

// Run resumes the wizard at the first unfinished step and blocks in the
// REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Arabic Global School registration (type 'help' for commands)")
	step := a.wizard.Resume(ctx)
	if step != wizard.StepClass {
		fmt.Fprintf(a.out, "Saved answers found, continuing at: %s\n", step)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// Close releases the database and flushes the logger.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn(context.Background(), "close failed", "err", err)
		}
	}
	a.closers = nil
}

func (a *App) getStatus() string {
	return a.wizard.Current().String()
}

func (a *App) reportProgress(f models.UploadedFile, n, total int) {
	fmt.Fprintf(a.out, "Uploading %d/%d: %s\n", n, total, f.FileName)
}
