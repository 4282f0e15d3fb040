// Package canonical defines the vendor-agnostic data shapes of the
// unified API. Every (feature, subfeature) pair has exactly one record
// type here; vendor adapters normalize their idiosyncratic payloads
// into these records and nothing else.
//
// Fields a vendor cannot supply stay at their documented defaults:
// empty string, nil pointer, or empty slice. Numeric fields that
// vendors deliver as strings go through ParseFloat / ParseInt.
package canonical
