// Package httpfetch provides a fetcher.Client implementation backed by an
// ordinary net/http client.
package httpfetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gimmie/pkg/fetcher"
	"gimmie/pkg/serrors"
)

// Client performs HTTP/HTTPS GET downloads and fulfills the fetcher.Client
// interface. It is safe for concurrent use, although the batch runner only
// ever calls it sequentially.
type Client struct {
	httpClient *http.Client // httpClient performs the actual requests
	userAgent  string       // userAgent is sent with every request
}

// NewHTTPClient builds an http.Client with the bounded-time behavior a batch
// run needs: connectTimeout caps connection establishment and the TLS
// handshake, requestTimeout caps the whole request including reading the
// body. An unresponsive server can never hang the run longer than
// requestTimeout.
func NewHTTPClient(connectTimeout, requestTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: connectTimeout}

	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: connectTimeout,
		},
		Timeout: requestTimeout,
	}
}

// Fetch downloads URL into dest with a single GET attempt and returns the
// number of bytes written. Errors carry a semantic kind: transport timeouts
// match serrors.ErrTimeout, HTTP 404 matches serrors.ErrNotFound, other
// transport failures and non-2xx statuses match serrors.ErrDownload, and
// local write failures match serrors.ErrFilesystem. When the body read fails
// midway the partial file is left in place for the user to inspect.
func (c *Client) Fetch(ctx context.Context, URL string, dest string) (fetcher.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return fetcher.Result{}, serrors.Wrap(serrors.ErrDownload, err, "could not build request for %s", URL)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fetcher.Result{}, serrors.Wrap(serrors.ErrTimeout, err, "request to %s timed out", URL)
		}

		return fetcher.Result{}, serrors.Wrap(serrors.ErrDownload, err, "could not send request to %s", URL)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return fetcher.Result{}, serrors.With(serrors.ErrNotFound, "server returned %s", resp.Status)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fetcher.Result{}, serrors.With(serrors.ErrDownload, "server returned %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fetcher.Result{}, serrors.Wrap(serrors.ErrFilesystem, err, "could not create directory for %s", dest)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fetcher.Result{}, serrors.Wrap(serrors.ErrFilesystem, err, "could not create %s", dest)
	}

	written, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil {
		// the partial file stays on disk, the caller reports the path
		if isTimeout(copyErr) {
			return fetcher.Result{}, serrors.Wrap(serrors.ErrTimeout, copyErr, "reading body of %s timed out", URL)
		}

		return fetcher.Result{}, serrors.Wrap(serrors.ErrDownload, copyErr, "could not read body of %s", URL)
	}
	if closeErr != nil {
		return fetcher.Result{}, serrors.Wrap(serrors.ErrFilesystem, closeErr, "could not close %s", dest)
	}

	return fetcher.Result{Path: dest, Bytes: written}, nil
}

// isTimeout reports whether err stems from a deadline rather than a refusal
// or protocol problem.
func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}

// Ensure Client conforms to the fetcher.Client interface at compile time.
var _ fetcher.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client and sends the
// given User-Agent with every request.
func New(httpClient *http.Client, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}
