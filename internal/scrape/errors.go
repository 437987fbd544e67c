package scrape

import "errors"

var (
	// ErrExtractionTimeout means the page did not render the hourly
	// table within the wait budget. The orchestrator treats it as a
	// failed unit for that location, never as a batch failure.
	ErrExtractionTimeout = errors.New("extraction timed out waiting for forecast table")

	// ErrTableNotFound means the page rendered but the hourly table
	// node was missing from the captured document.
	ErrTableNotFound = errors.New("hourly forecast table not found in page")
)
