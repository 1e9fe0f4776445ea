package batch

import (
	"context"

	"gimmie/internal/urllist"
	"gimmie/pkg/domain"
)

//go:generate mockgen -package mockbatch -source=interface.go -destination=mock/mockbatch.go *
type Runner interface {
	// Run drains the URL list, downloading every entry sequentially, and
	// returns the final tally. A Runner is single-use.
	Run(ctx context.Context, src *urllist.Source) (domain.Summary, error)
}
