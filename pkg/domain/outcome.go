package domain

import (
	"github.com/google/uuid"
)

// RunID uniquely identifies a single batch run.
// It wraps uuid.UUID to provide type safety at the domain layer.
type RunID uuid.UUID

// NewRunID generates a fresh identifier for a batch run.
func NewRunID() RunID { return RunID(uuid.New()) }

// String returns the canonical textual form of the run ID.
func (id RunID) String() string { return uuid.UUID(id).String() }

// Target pairs a URL from the input list with the local path it will be
// written to. It is produced by the filename resolver and consumed exactly
// once by the downloader.
type Target struct {
	// URL is the address to fetch.
	URL string
	// Path is the resolved destination file path, unique within the run.
	Path string
	// Position is the 1-based index of the entry among the yielded URLs.
	Position int
}

// Outcome is the per-URL result record. Exactly one Outcome exists for every
// non-blank, non-comment line of the input list.
type Outcome struct {
	// URL is the address that was attempted.
	URL string
	// Path is the destination the download was written to (set on success).
	Path string
	// Bytes is the number of bytes written to Path (set on success).
	Bytes int64
	// Err holds the failure cause; nil means the download succeeded.
	Err error
}

// Failed reports whether this outcome records a failure.
func (o Outcome) Failed() bool { return o.Err != nil }

// Summary is the final tally of a batch run.
type Summary struct {
	// Succeeded counts entries whose download completed.
	Succeeded int
	// Failed counts entries whose download failed for any reason.
	Failed int
}

// Total returns the number of entries processed in the run.
func (s Summary) Total() int { return s.Succeeded + s.Failed }

// ExitCode maps the summary to the process exit status: 0 when every entry
// succeeded (including an empty but readable list), 1 when anything failed.
func (s Summary) ExitCode() int {
	if s.Failed > 0 {
		return 1
	}

	return 0
}
