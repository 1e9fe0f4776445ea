// Package fetcher defines the abstraction used to download a single resource
// over HTTP and write it to a local file.
package fetcher

import (
	"context"
)

// Result describes a completed download.
type Result struct {
	// Path is the local file the body was written to.
	Path string
	// Bytes is the number of bytes written.
	Bytes int64
}

// Client is the abstraction for downloaders. Implementations perform one
// blocking fetch per call, writing the response body verbatim to dest. No
// retries happen at this layer; a failed fetch is reported once and the
// caller decides how to proceed. A partial file written before a failure is
// left in place.
//
//go:generate mockgen -package mockfetcher -source=interface.go -destination=mock/mockfetcher.go *
type Client interface {
	// Fetch downloads URL into the file at dest, creating parent directories
	// if absent, and returns how many bytes were written.
	Fetch(ctx context.Context, URL string, dest string) (Result, error)
}
