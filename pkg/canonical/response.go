package canonical

import "github.com/Jiyath5516F/edenai-apis/pkg/jsonx"

// Response pairs the raw vendor payload with the standardized record a
// subfeature produced from it. The original response is preserved only
// for debugging; equivalence checks run against the standardized part.
type Response[T any] struct {
	Original     jsonx.Value `json:"original_response"`
	Standardized T           `json:"standardized_response"`
}

// JobStatus is the lifecycle state of an asynchronous vendor job as
// exposed by the unified API.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// AsyncResponse is the polling result of an asynchronous subfeature.
// Standardized and Original are populated only when Status is
// JobSucceeded; Error only when Status is JobFailed.
type AsyncResponse[T any] struct {
	Status        JobStatus   `json:"status"`
	ProviderJobID string      `json:"provider_job_id"`
	Original      jsonx.Value `json:"original_response,omitempty"`
	Standardized  *T          `json:"standardized_response,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// FileInput carries a file supplied to a file-consuming subfeature.
// Either Content (raw bytes with a name used for content-type
// inference) or URL (an already-hosted location the vendor can fetch)
// must be set.
type FileInput struct {
	Name    string `json:"name,omitempty"`
	Content []byte `json:"-"`
	URL     string `json:"url,omitempty"`
}
