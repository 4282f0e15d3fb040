// Package equivalence decides whether two JSON-like trees share the
// same standardized shape. It is the validation core of the adapter
// test suite: a golden fixture and a live adapter output are equivalent
// when their structure and type classes agree, regardless of scalar
// values.
//
// The rules are deliberately lenient where vendor output legitimately
// varies (scalar values, list tails, registered ignore keys) and strict
// where the canonical schema must hold (key sets, collection kinds,
// scalar type classes with integers treated as floats).
package equivalence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Jiyath5516F/edenai-apis/pkg/jsonx"
)

// Error reports the first structural divergence found, qualified by the
// path from the root to the offending node.
type Error struct {
	Path    []string
	Message string
}

// Error implements the error interface. The path segments are joined
// with dots so the failing location reads like a JSON pointer.
func (e *Error) Error() string {
	return e.Message + ". Path: " + strings.Join(e.Path, ".")
}

// Check walks reference and candidate depth-first and returns nil when
// the trees are structurally equivalent. ignore lists mapping keys
// whose values are excluded from comparison wherever they appear.
//
// Check is a pure function: it holds no state between calls and is safe
// for concurrent use with independent inputs.
func Check(reference, candidate jsonx.Value, ignore map[string]struct{}) error {
	if ignore == nil {
		ignore = map[string]struct{}{}
	}
	return check(reference, candidate, []string{"<root>"}, ignore)
}

func check(ref, cand jsonx.Value, path []string, ignore map[string]struct{}) error {
	// A null may stand in for any scalar but never for a collection.
	if err := checkNull(ref, cand, path); err != nil {
		return err
	}
	if ref.IsNull() || cand.IsNull() {
		return nil
	}

	// Type classes must agree when both sides carry a value. Integers
	// count as floats; raw byte payloads are never type-checked.
	if ref.Kind() != jsonx.Bytes && cand.Kind() != jsonx.Bytes {
		if ref.Kind() != cand.Kind() {
			return &Error{
				Path:    path,
				Message: fmt.Sprintf("%s != %s", ref.Kind(), cand.Kind()),
			}
		}
	}

	switch {
	case ref.Kind() == jsonx.Array || cand.Kind() == jsonx.Array:
		return checkArrays(ref, cand, path, ignore)
	case ref.Kind() == jsonx.Object || cand.Kind() == jsonx.Object:
		return checkObjects(ref, cand, path, ignore)
	}

	// Scalars: equivalence is purely structural, values are never
	// compared. Live responses differ from fixtures in timestamps,
	// ids, and scores while remaining equivalent in shape.
	return nil
}

// checkNull rejects a null on one side paired with a collection on the
// other. Null against scalar is tolerated.
func checkNull(ref, cand jsonx.Value, path []string) error {
	pairs := []struct{ a, b jsonx.Value }{{ref, cand}, {cand, ref}}
	for _, p := range pairs {
		if !p.a.IsNull() {
			continue
		}
		switch p.b.Kind() {
		case jsonx.Array:
			return &Error{Path: path, Message: "null and list"}
		case jsonx.Object:
			return &Error{Path: path, Message: "null and dict"}
		}
	}
	return nil
}

// checkArrays compares two sequence nodes. Only the first element pair
// is compared: canonical list elements are homogeneous in shape, so
// sampling the head is sufficient and keeps fixtures small. Lengths are
// not an equivalence criterion.
func checkArrays(ref, cand jsonx.Value, path []string, ignore map[string]struct{}) error {
	if ref.Kind() != jsonx.Array || cand.Kind() != jsonx.Array {
		return &Error{Path: path, Message: "not two lists"}
	}
	if ref.Len() == 0 || cand.Len() == 0 {
		return nil
	}
	refHead, _ := ref.Index(0)
	candHead, _ := cand.Index(0)
	return check(refHead, candHead, extend(path, "0"), ignore)
}

// checkObjects compares two mapping nodes: identical key sets (ignore
// keys excluded, order irrelevant), then recursive comparison of the
// shared values. Missing and extra keys are collected together before
// failing so one diagnostic names both sides of the divergence.
func checkObjects(ref, cand jsonx.Value, path []string, ignore map[string]struct{}) error {
	if ref.Kind() != jsonx.Object || cand.Kind() != jsonx.Object {
		return &Error{Path: path, Message: "not two dicts"}
	}

	missing := keyDifference(ref, cand, ignore)
	extra := keyDifference(cand, ref, ignore)
	if len(missing) > 0 || len(extra) > 0 {
		var parts []string
		if len(missing) > 0 {
			parts = append(parts, fmt.Sprintf("missing keys %v", missing))
		}
		if len(extra) > 0 {
			parts = append(parts, fmt.Sprintf("extra keys %v", extra))
		}
		return &Error{Path: path, Message: strings.Join(parts, ", ")}
	}

	for _, key := range ref.Keys() {
		if _, skip := ignore[key]; skip {
			continue
		}
		refVal, _ := ref.Get(key)
		candVal, ok := cand.Get(key)
		if !ok {
			continue
		}
		if err := check(refVal, candVal, extend(path, key), ignore); err != nil {
			return err
		}
	}
	return nil
}

// extend copies the path before appending so sibling recursions never
// share a backing array.
func extend(path []string, segment string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, segment)
}

// keyDifference returns the sorted keys present in a but absent in b,
// skipping ignore keys. Sorting keeps diagnostics reproducible.
func keyDifference(a, b jsonx.Value, ignore map[string]struct{}) []string {
	var diff []string
	for _, key := range a.Keys() {
		if _, skip := ignore[key]; skip {
			continue
		}
		if _, ok := b.Get(key); !ok {
			diff = append(diff, key)
		}
	}
	sort.Strings(diff)
	return diff
}
