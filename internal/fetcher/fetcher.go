package fetcher

import "context"

// Page is a fetched document, body decoded to UTF-8.
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Fetcher defines the interface for retrieving roster pages.
type Fetcher interface {
	// Fetch retrieves the URL and returns its decoded body. Failures are
	// returned as *FetchError.
	Fetch(ctx context.Context, url string) (*Page, error)
}
