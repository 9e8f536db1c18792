package models

// FetchResponse is the response for POST /fetch on success and on
// downstream failure.
type FetchResponse struct {
	// Success indicates whether the page was fetched and rewritten.
	Success bool `json:"success"`

	// Content is the rewritten HTML document.
	Content string `json:"content,omitempty"`

	// Error is populated only when Success is false.
	Error string `json:"error,omitempty"`
}

// ErrorResponse is the response for requests rejected before any fetch
// is attempted.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
	Rules   int    `json:"rules"`
}
