package rest

import (
	"encoding/json"
	"fmt"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
)

// maxErrorBody bounds how much of a vendor error payload is inspected
// for a message.
const maxErrorBody = 4096

// MapHTTPError converts a non-2xx vendor response into a ProviderError.
// The body is probed for the common error envelope shapes; when none
// matches, a generic message naming the status is used.
func MapHTTPError(provider string, statusCode int, body []byte) *canonical.ProviderError {
	message := ExtractErrorMessage(body)
	if message == "" {
		message = fmt.Sprintf("vendor returned HTTP %d", statusCode)
	}
	return canonical.NewProviderHTTPError(provider, message, statusCode)
}

// MapNetworkError converts a network-level failure (connection refused,
// timeout, DNS) into a ProviderError without a status code.
func MapNetworkError(provider string, err error) *canonical.ProviderError {
	return canonical.NewProviderError(provider, fmt.Sprintf("vendor connection error: %s", err))
}

// ExtractErrorMessage probes a vendor error body for a human-readable
// message. Vendors disagree on the envelope: some nest it under
// "error", some use a bare "message" or "detail" field, some return
// "error" as a plain string.
func ExtractErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
		Detail  string          `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	if len(envelope.Error) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Error, &s); err == nil && s != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Detail
}
