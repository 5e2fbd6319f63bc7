package scraper

import "errors"

var (
	// ErrAuth marks rejected credentials or a session the portal refused.
	ErrAuth = errors.New("authentication failed")
	// ErrNetwork marks a connectivity failure that survived the retry
	// budget.
	ErrNetwork = errors.New("network failure")
)
