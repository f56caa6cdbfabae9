// Package api is the HTTP client of the summarization backend.
//
// The backend exposes a GraphQL action that summarizes a video and a REST
// resource with the summaries of the current user. Every call is a single
// authenticated round trip: there is no retry, no backoff and no timeout
// unless one is configured. Failures are reported as result values carrying
// a fixed user-facing message; the underlying error is logged and kept on
// the result for callers that need it.
package api
