// Package domain contains the core domain entities and types used by the
// application, such as download targets, per-URL outcomes and run summaries.
package domain
