package models

// FetchRequest is the payload for POST /fetch.
type FetchRequest struct {
	// URL is the page to fetch and rewrite. Required.
	//
	// Only presence is checked at bind time. A value that is not an absolute
	// http(s) URL is rejected later by the fetcher and surfaces as a 500.
	URL string `json:"url" binding:"required"`
}
