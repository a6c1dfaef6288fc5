package sitewalk

import "context"

// Response is a successfully fetched page.
type Response struct {
	// URL is the final URL after redirects.
	URL         string
	StatusCode  int
	ContentType string
	// Body is the response body decoded to UTF-8.
	Body []byte
}

// Fetcher retrieves pages over the network.
type Fetcher interface {
	// Fetch retrieves the URL. Only a 200 response is a success. Failures are
	// reported with code ESTATUS for other statuses, EREDIRECT when the
	// redirect limit is exceeded, and ETRANSPORT for everything else.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases resources held by the fetcher.
	Close() error
}
