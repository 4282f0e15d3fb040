package provider

// Settings carries the per-vendor credentials and endpoint overrides an
// adapter constructor receives. Loaded once per process from the
// configuration layer and immutable thereafter; adapters never reach
// into global state for credentials.
type Settings struct {
	// APIKey is the vendor credential. Interpretation (header name,
	// scheme) is adapter-specific.
	APIKey string

	// BaseURL overrides the vendor's default endpoint. Used by tests
	// to point adapters at a mock vendor.
	BaseURL string

	// Extra holds vendor-specific settings that don't generalize
	// (project ids, regions, secondary tokens).
	Extra map[string]string
}

// ExtraOr returns Extra[key], or fallback when absent.
func (s Settings) ExtraOr(key, fallback string) string {
	if v, ok := s.Extra[key]; ok && v != "" {
		return v
	}
	return fallback
}
