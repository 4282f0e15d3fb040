package equivalence

import (
	"strings"
	"sync"
)

// Some subfeatures carry fields that are legitimately non-deterministic
// across vendor calls (presigned URLs, job ids, timestamps). Those keys
// are registered per (feature, subfeature) pair and excluded from
// equivalence checking wherever they appear in a mapping.

var ignoreRegistry = struct {
	mu   sync.RWMutex
	keys map[string][]string
}{keys: make(map[string][]string)}

// RegisterIgnoreKeys records keys to skip for a feature/subfeature
// pair. Intended to be called once at process startup (init functions
// or test setup); later calls append.
func RegisterIgnoreKeys(feature, subfeature string, keys ...string) {
	id := pairKey(feature, subfeature)
	ignoreRegistry.mu.Lock()
	defer ignoreRegistry.mu.Unlock()
	ignoreRegistry.keys[id] = append(ignoreRegistry.keys[id], keys...)
}

// IgnoreKeys returns the set of keys to skip for a feature/subfeature
// pair, empty if none are registered. Async subfeatures share their
// synchronous counterpart's registration: a trailing "_async" suffix is
// normalized away on lookup.
func IgnoreKeys(feature, subfeature string) map[string]struct{} {
	id := pairKey(feature, subfeature)
	ignoreRegistry.mu.RLock()
	defer ignoreRegistry.mu.RUnlock()

	set := make(map[string]struct{})
	for _, k := range ignoreRegistry.keys[id] {
		set[k] = struct{}{}
	}
	return set
}

func pairKey(feature, subfeature string) string {
	return feature + "/" + strings.TrimSuffix(subfeature, "_async")
}

func init() {
	// Presigned result URLs embed expiring signatures.
	RegisterIgnoreKeys("translation", "document_translation", "file_url")
	// Vendor job ids differ on every launch.
	RegisterIgnoreKeys("audio", "speech_to_text_async", "provider_job_id")
}
