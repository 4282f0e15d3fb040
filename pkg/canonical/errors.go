package canonical

import "fmt"

// ProviderError reports that a vendor returned an error payload or a
// non-success HTTP status. Code is the HTTP status code when known,
// 0 otherwise. Adapters never retry on their own; the error propagates
// to the caller as-is.
type ProviderError struct {
	Provider string `json:"provider,omitempty"`
	Message  string `json:"message"`
	Code     int    `json:"code,omitempty"`
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	switch {
	case e.Provider != "" && e.Code != 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.Code)
	case e.Provider != "":
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	case e.Code != 0:
		return fmt.Sprintf("%s (status %d)", e.Message, e.Code)
	default:
		return e.Message
	}
}

// NewProviderError creates a ProviderError without a status code.
func NewProviderError(provider, message string) *ProviderError {
	return &ProviderError{Provider: provider, Message: message}
}

// NewProviderHTTPError creates a ProviderError carrying the vendor's
// HTTP status code.
func NewProviderHTTPError(provider, message string, code int) *ProviderError {
	return &ProviderError{Provider: provider, Message: message, Code: code}
}

// InvalidInputError reports a request the gateway rejected before any
// vendor call was made.
type InvalidInputError struct {
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s (param: %s)", e.Message, e.Param)
	}
	return e.Message
}

// NewInvalidInputError creates an InvalidInputError for a request parameter.
func NewInvalidInputError(param, message string) *InvalidInputError {
	return &InvalidInputError{Param: param, Message: message}
}
