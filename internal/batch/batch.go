// Package batch drives the sequential download loop: it consumes the URL
// list, resolves a destination filename per entry, invokes the downloader,
// and records one outcome per entry. One failing URL never aborts the batch.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"

	"gimmie/internal/config"
	"gimmie/internal/resolve"
	"gimmie/internal/urllist"
	"gimmie/pkg/domain"
	"gimmie/pkg/fetcher"
	"gimmie/pkg/logger"
	"gimmie/pkg/serrors"

	"go.uber.org/zap"
)

// Options configure a batch run. These settings are typically derived from
// application configuration, with CLI flags layered on top.
type Options struct {
	// Directory is the destination directory for downloaded files. It is
	// created at the start of the run if absent.
	Directory string
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Directory: cfg.Downloads.Directory,
	}
}

// state tracks the runner lifecycle: NotStarted -> Running -> Done. Nothing
// is persisted between states; a crash mid-run loses the remaining entries.
type state int

const (
	stateNotStarted state = iota
	stateRunning
	stateDone
)

// runner is the concrete implementation of the Runner interface. It owns the
// per-run tally and the resolver's claimed-name set; both live on a single
// goroutine, so no locking is needed.
type runner struct {
	// options holds runtime configuration for the run.
	options Options
	// client performs the individual downloads.
	client fetcher.Client
	// out receives the per-URL status lines and the final summary line.
	out io.Writer
	// state guards against reuse of a finished runner.
	state state
}

// Run processes every entry of src in order. Each entry produces exactly one
// outcome: a status line on out, structured log fields, and an increment of
// the summary. Failed downloads are reported and skipped over; only an
// unreadable list, an unusable destination directory, or context cancellation
// end the run early. Calling Run twice on the same runner fails with a
// conflict error.
func (r *runner) Run(ctx context.Context, src *urllist.Source) (domain.Summary, error) {
	if r.state != stateNotStarted {
		return domain.Summary{}, serrors.With(serrors.ErrConflict, "runner already used, construct a new one per batch")
	}
	r.state = stateRunning
	defer func() { r.state = stateDone }()

	runID := domain.NewRunID()
	ctx = logger.WithFields(ctx, zap.String("runID", runID.String()))

	if err := os.MkdirAll(r.options.Directory, 0o755); err != nil {
		return domain.Summary{}, serrors.Wrap(serrors.ErrFilesystem, err,
			"could not create destination directory %s", r.options.Directory)
	}

	resolver := resolve.New(r.options.Directory)

	var summary domain.Summary
	for {
		// an interrupt lands between entries, never mid-download
		if err := ctx.Err(); err != nil {
			logger.Warn(ctx, "run interrupted", zap.Error(err))

			return summary, fmt.Errorf("run interrupted: %w", err)
		}

		entry, ok := src.Next()
		if !ok {
			break
		}

		target := domain.Target{
			URL:      entry.URL,
			Path:     resolver.Resolve(entry.URL, entry.Position),
			Position: entry.Position,
		}

		outcome := r.download(ctx, target)
		if outcome.Failed() {
			summary.Failed++
			// the path is part of the line: a partial file may be left there
			fmt.Fprintf(r.out, "failed %s -> %s: %v\n", outcome.URL, outcome.Path, outcome.Err)
		} else {
			summary.Succeeded++
			fmt.Fprintf(r.out, "ok %s -> %s (%d bytes)\n", outcome.URL, outcome.Path, outcome.Bytes)
		}
	}

	if err := src.Err(); err != nil {
		return summary, fmt.Errorf("could not read URL list: %w", err)
	}

	fmt.Fprintf(r.out, "downloaded %d of %d files\n", summary.Succeeded, summary.Total())
	logger.Info(ctx, "run finished",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed))

	return summary, nil
}

// download fetches a single target and converts the result into an outcome.
// All errors are absorbed into the outcome; the loop decides nothing beyond
// counting them.
func (r *runner) download(ctx context.Context, target domain.Target) domain.Outcome {
	ctx = logger.WithFields(ctx,
		zap.String("URL", target.URL),
		zap.Int("position", target.Position))

	res, err := r.client.Fetch(ctx, target.URL, target.Path)
	if err != nil {
		logger.Warn(ctx, "download failed", zap.Error(err))

		return domain.Outcome{URL: target.URL, Path: target.Path, Err: err}
	}

	logger.Info(ctx, "download completed",
		zap.String("path", res.Path),
		zap.Int64("bytes", res.Bytes))

	return domain.Outcome{URL: target.URL, Path: res.Path, Bytes: res.Bytes}
}

// New creates a single-use Runner that downloads with the given client and
// writes its report to out.
func New(client fetcher.Client, out io.Writer, options Options) Runner {
	return &runner{
		options: options,
		client:  client,
		out:     out,
	}
}
