package core

import "errors"

// Failure classes surfaced by the pipeline. Callers wrap them with context
// and match with errors.Is.
var (
	// ErrFetch means the feed could not be retrieved. Fatal for the run.
	ErrFetch = errors.New("feed fetch failed")
	// ErrParse means the feed body is not a well-formed feed document. Fatal for the run.
	ErrParse = errors.New("feed parse failed")
	// ErrMalformedEntry means a single entry is too broken to normalize.
	// The entry is skipped.
	ErrMalformedEntry = errors.New("malformed entry")
	// ErrTemplateMissing means the template file does not exist.
	ErrTemplateMissing = errors.New("template file missing")
	// ErrWrite means an output file could not be written.
	ErrWrite = errors.New("output write failed")
)
