package api4ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider"
)

func newTestAdapter(t *testing.T, handler http.Handler) *API4AI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(provider.Settings{APIKey: "key", BaseURL: srv.URL})
}

func TestDetectExplicitContent(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != nsfwPath {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("api_key"); got != "key" {
			t.Errorf("expected api_key query parameter, got %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		if _, _, err := r.FormFile("image"); err != nil {
			t.Errorf("expected image part: %v", err)
		}
		w.Write([]byte(`{
			"results": [{
				"status": {"code": "ok", "message": ""},
				"entities": [{"classes": {"nsfw": 0.93, "sfw": 0.07}}]
			}]
		}`))
	}))

	resp, err := a.DetectExplicitContent(context.Background(), &canonical.ImageRequest{
		File: canonical.FileInput{Name: "photo.jpg", Content: []byte("jpeg")},
	})
	if err != nil {
		t.Fatalf("DetectExplicitContent failed: %v", err)
	}

	std := resp.Standardized
	if std.NSFWLikelihood != 5 {
		t.Errorf("expected nsfw likelihood 5, got %d", std.NSFWLikelihood)
	}
	if len(std.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(std.Items))
	}
	// Items come back sorted by label.
	if std.Items[0].Label != "nsfw" || std.Items[0].Likelihood != 5 {
		t.Errorf("unexpected first item %+v", std.Items[0])
	}
	if std.Items[1].Label != "sfw" || std.Items[1].Likelihood != 1 {
		t.Errorf("unexpected second item %+v", std.Items[1])
	}
}

func TestDetectExplicitContent_SafeImage(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": [{
				"status": {"code": "ok", "message": ""},
				"entities": [{"classes": {"nsfw": 0.02, "sfw": 0.98}}]
			}]
		}`))
	}))

	resp, err := a.DetectExplicitContent(context.Background(), &canonical.ImageRequest{
		File: canonical.FileInput{Name: "cat.jpg", Content: []byte("jpeg")},
	})
	if err != nil {
		t.Fatalf("DetectExplicitContent failed: %v", err)
	}
	// The safe class does not drive the overall likelihood.
	if resp.Standardized.NSFWLikelihood != 1 {
		t.Errorf("expected nsfw likelihood 1, got %d", resp.Standardized.NSFWLikelihood)
	}
}

func TestDetectExplicitContent_VendorFailureInsideEnvelope(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": [{
				"status": {"code": "failure", "message": "Image is too small."},
				"entities": []
			}]
		}`))
	}))

	_, err := a.DetectExplicitContent(context.Background(), &canonical.ImageRequest{
		File: canonical.FileInput{Name: "tiny.png", Content: []byte("png")},
	})
	var pe *canonical.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProviderError, got %T (%v)", err, err)
	}
	if pe.Message != "Image is too small." {
		t.Errorf("unexpected message %q", pe.Message)
	}
}

func TestDetectExplicitContent_RequiresContent(t *testing.T) {
	a := New(provider.Settings{APIKey: "key"})
	_, err := a.DetectExplicitContent(context.Background(), &canonical.ImageRequest{})
	var ie *canonical.InvalidInputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InvalidInputError, got %T", err)
	}
}

func TestLikelihoodScale(t *testing.T) {
	cases := []struct {
		score float64
		want  int
	}{
		{0.0, 1}, {0.2, 1}, {0.35, 2}, {0.55, 3}, {0.75, 4}, {0.93, 5}, {1.0, 5},
	}
	for _, tc := range cases {
		if got := canonical.LikelihoodFromScore(tc.score); got != tc.want {
			t.Errorf("LikelihoodFromScore(%v) = %d, want %d", tc.score, got, tc.want)
		}
	}
}
