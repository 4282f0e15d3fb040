package equivalence

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Jiyath5516F/edenai-apis/pkg/jsonx"
)

// FixtureStore loads golden standardized responses from a directory
// tree laid out as {root}/{feature}/{subfeature}/{subfeature}_response.json,
// with an extra {phase} path element and filename infix for multi-phase
// subfeatures.
type FixtureStore struct {
	Root string
}

// Load returns the golden tree for a feature/subfeature pair. phase may
// be empty. Fixtures that still embed a raw vendor payload under
// "original_response" are rejected: goldens describe the standardized
// shape only.
func (s *FixtureStore) Load(feature, subfeature, phase string) (jsonx.Value, error) {
	var path string
	if phase != "" {
		path = filepath.Join(s.Root, feature, subfeature, phase,
			fmt.Sprintf("%s_%s_response.json", subfeature, phase))
	} else {
		path = filepath.Join(s.Root, feature, subfeature,
			fmt.Sprintf("%s_response.json", subfeature))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return jsonx.Value{}, fmt.Errorf("loading fixture %s: %w", path, err)
	}

	tree, err := jsonx.Decode(data)
	if err != nil {
		return jsonx.Value{}, fmt.Errorf("parsing fixture %s: %w", path, err)
	}

	if _, ok := tree.Get("original_response"); ok {
		return jsonx.Value{}, fmt.Errorf("fixture %s contains original_response, remove it", path)
	}

	return tree, nil
}

// Checker ties the fixture store and the ignore-key registry together
// into the top-level validation entry point used by adapter tests.
type Checker struct {
	Fixtures *FixtureStore
}

// CheckResponse loads the golden fixture for the feature/subfeature
// pair (and optional phase), resolves the registered ignore keys, and
// verifies that candidate is structurally equivalent to it.
func (c *Checker) CheckResponse(feature, subfeature, phase string, candidate jsonx.Value) error {
	golden, err := c.Fixtures.Load(feature, subfeature, phase)
	if err != nil {
		return err
	}
	return Check(golden, candidate, IgnoreKeys(feature, subfeature))
}
