package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"gimmie/internal/batch"
	"gimmie/internal/config"
	"gimmie/internal/urllist"
	"gimmie/pkg/fetcher/httpfetch"
	"gimmie/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// fetchCommand constructs the 'fetch' subcommand that downloads every URL
// listed in the given file into the destination directory.
//
// Exit status: 0 when the list was readable and every entry succeeded (an
// empty valid list counts as success); 1 when the list is unreadable, the
// destination directory cannot be created, or at least one download failed.
func fetchCommand(cfg *config.Config) *cobra.Command {
	var (
		directory      string
		connectTimeout time.Duration
		requestTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "fetch <url-file>",
		Short: "Downloads every URL listed in the given file",
		Long: "Reads a text file with one URL per line (blank lines and '#' comments are skipped)\n" +
			"and downloads each resource into the destination directory, continuing past\n" +
			"individual failures. A per-URL status line and a final summary are printed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// errors past this point are runtime failures, not usage mistakes
			cmd.SilenceUsage = true

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			src, err := urllist.Open(args[0])
			if err != nil {
				logger.Error(ctx, "could not open URL list", zap.Error(err))

				return err
			}
			defer func() {
				if err := src.Close(); err != nil {
					logger.Warn(ctx, "could not close URL list", zap.Error(err))
				}
			}()

			client := httpfetch.New(
				httpfetch.NewHTTPClient(connectTimeout, requestTimeout),
				cfg.Fetcher.UserAgent,
			)

			options := batch.NewOptions(cfg)
			options.Directory = directory

			summary, err := batch.New(client, cmd.OutOrStdout(), options).Run(ctx, src)
			if err != nil {
				logger.Error(ctx, "run aborted", zap.Error(err))

				return err
			}

			if summary.ExitCode() != 0 {
				return fmt.Errorf("%d of %d downloads failed", summary.Failed, summary.Total())
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", cfg.Downloads.Directory,
		"Destination directory for downloaded files (created if absent)")
	cmd.Flags().DurationVar(&connectTimeout, "connect-timeout", cfg.Fetcher.ConnectTimeout,
		"Timeout for establishing a connection")
	cmd.Flags().DurationVar(&requestTimeout, "request-timeout", cfg.Fetcher.RequestTimeout,
		"Timeout for a whole request including reading the body")

	return cmd
}
