package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Subfeature identifies one operation of the unified API.
type Subfeature struct {
	Feature    string
	Subfeature string
}

func (s Subfeature) String() string {
	return s.Feature + "/" + s.Subfeature
}

// capabilityProbe reports whether an adapter serves a subfeature.
// Keeping this as a table means adding a feature touches exactly two
// places: the interface and this list.
var capabilityProbes = []struct {
	sf    Subfeature
	match func(any) bool
}{
	{Subfeature{"translation", "automatic_translation"}, func(v any) bool { _, ok := v.(AutomaticTranslator); return ok }},
	{Subfeature{"translation", "document_translation"}, func(v any) bool { _, ok := v.(DocumentTranslator); return ok }},
	{Subfeature{"text", "named_entity_recognition"}, func(v any) bool { _, ok := v.(EntityRecognizer); return ok }},
	{Subfeature{"ocr", "invoice_parser"}, func(v any) bool { _, ok := v.(InvoiceParser); return ok }},
	{Subfeature{"ocr", "identity_parser"}, func(v any) bool { _, ok := v.(IdentityParser); return ok }},
	{Subfeature{"audio", "speech_to_text_async"}, func(v any) bool { _, ok := v.(SpeechToTextProvider); return ok }},
	{Subfeature{"image", "explicit_content"}, func(v any) bool { _, ok := v.(ExplicitContentDetector); return ok }},
}

// Subfeatures returns every subfeature the registry knows about, in
// declaration order.
func Subfeatures() []Subfeature {
	out := make([]Subfeature, len(capabilityProbes))
	for i, probe := range capabilityProbes {
		out[i] = probe.sf
	}
	return out
}

// Registry maps (vendor, feature, subfeature) to the adapter serving
// it. Adapters are registered at startup; lookups afterwards are
// read-only and safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	vendors map[string]Vendor
	index   map[Subfeature][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		vendors: make(map[string]Vendor),
		index:   make(map[Subfeature][]string),
	}
}

// Register inspects the adapter's capabilities and indexes it under
// every subfeature it serves. Registering an adapter that serves no
// subfeature, or a vendor name twice, is a configuration error.
func (r *Registry) Register(v Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := v.Name()
	if _, exists := r.vendors[name]; exists {
		return fmt.Errorf("vendor %q registered twice", name)
	}

	served := 0
	for _, probe := range capabilityProbes {
		if probe.match(v) {
			r.index[probe.sf] = append(r.index[probe.sf], name)
			served++
		}
	}
	if served == 0 {
		return fmt.Errorf("vendor %q implements no capability", name)
	}

	r.vendors[name] = v
	return nil
}

// Resolve returns the adapter registered under vendor if it serves the
// given subfeature.
func (r *Registry) Resolve(vendor string, sf Subfeature) (Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vendors[vendor]
	if !ok {
		return nil, fmt.Errorf("unknown vendor %q", vendor)
	}
	for _, probe := range capabilityProbes {
		if probe.sf == sf {
			if !probe.match(v) {
				return nil, fmt.Errorf("vendor %q does not serve %s", vendor, sf)
			}
			return v, nil
		}
	}
	return nil, fmt.Errorf("unknown subfeature %s", sf)
}

// Vendors returns the sorted vendor names serving a subfeature.
func (r *Registry) Vendors(sf Subfeature) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.index[sf]))
	copy(out, r.index[sf])
	sort.Strings(out)
	return out
}

// Typed resolution helpers. Each returns the adapter narrowed to the
// capability interface; the type assertions cannot fail after Resolve
// succeeds but are kept explicit for the compiler.

func (r *Registry) AutomaticTranslator(vendor string) (AutomaticTranslator, error) {
	v, err := r.Resolve(vendor, Subfeature{"translation", "automatic_translation"})
	if err != nil {
		return nil, err
	}
	return v.(AutomaticTranslator), nil
}

func (r *Registry) DocumentTranslator(vendor string) (DocumentTranslator, error) {
	v, err := r.Resolve(vendor, Subfeature{"translation", "document_translation"})
	if err != nil {
		return nil, err
	}
	return v.(DocumentTranslator), nil
}

func (r *Registry) EntityRecognizer(vendor string) (EntityRecognizer, error) {
	v, err := r.Resolve(vendor, Subfeature{"text", "named_entity_recognition"})
	if err != nil {
		return nil, err
	}
	return v.(EntityRecognizer), nil
}

func (r *Registry) InvoiceParser(vendor string) (InvoiceParser, error) {
	v, err := r.Resolve(vendor, Subfeature{"ocr", "invoice_parser"})
	if err != nil {
		return nil, err
	}
	return v.(InvoiceParser), nil
}

func (r *Registry) IdentityParser(vendor string) (IdentityParser, error) {
	v, err := r.Resolve(vendor, Subfeature{"ocr", "identity_parser"})
	if err != nil {
		return nil, err
	}
	return v.(IdentityParser), nil
}

func (r *Registry) SpeechToTextProvider(vendor string) (SpeechToTextProvider, error) {
	v, err := r.Resolve(vendor, Subfeature{"audio", "speech_to_text_async"})
	if err != nil {
		return nil, err
	}
	return v.(SpeechToTextProvider), nil
}

func (r *Registry) ExplicitContentDetector(vendor string) (ExplicitContentDetector, error) {
	v, err := r.Resolve(vendor, Subfeature{"image", "explicit_content"})
	if err != nil {
		return nil, err
	}
	return v.(ExplicitContentDetector), nil
}
