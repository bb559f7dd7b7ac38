package probe

import "context"

// Response is the raw outcome of a single probe.
//
// Fields:
//   - StatusCode: HTTP status code when available; 0 for transport errors.
//   - Body: response body decoded as text, possibly truncated to the read cap.
//   - Err: set when the request could not complete (connect failure, timeout,
//     body read failure). It is the transport-error flag for the classifier.
type Response struct {
	StatusCode int
	Body       string
	Err        error
}

// Fetcher performs a single probe of a target URL. Failures are reported in
// Response.Err, never as a separate return value.
type Fetcher interface {
	Fetch(ctx context.Context, target string) Response
}
