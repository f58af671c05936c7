package common

// MaxBatchFiles bounds the number of files in a single upload submission.
const MaxBatchFiles = 5

// DefaultCredits is the balance assumed for a freshly provisioned profile
// when the backend cannot report one yet (403/404 on the first fetch).
const DefaultCredits = 5

// RequestIDHeaderName carries a client-generated id on outbound requests so
// the backend can correlate (and deduplicate) retried calls.
const RequestIDHeaderName = "X-Request-ID"
