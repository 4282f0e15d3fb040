// Package api4ai adapts the API4AI image analysis API to
// image/explicit_content.
package api4ai

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider/rest"
)

const (
	providerName   = "api4ai"
	defaultBaseURL = "https://api4ai.cloud"

	nsfwPath = "/nsfw/v1/results"
)

// API4AI is the adapter. Authentication rides on an api_key query
// parameter rather than a header.
type API4AI struct {
	client *rest.Client
	apiKey string
}

// New creates the adapter from its settings.
func New(settings provider.Settings) *API4AI {
	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &API4AI{
		client: rest.NewClient(providerName, baseURL, 30*time.Second, nil),
		apiKey: settings.APIKey,
	}
}

// Name implements provider.Vendor.
func (a *API4AI) Name() string { return providerName }

// DetectExplicitContent implements provider.ExplicitContentDetector.
func (a *API4AI) DetectExplicitContent(ctx context.Context, req *canonical.ImageRequest) (*canonical.Response[canonical.ExplicitContent], error) {
	if len(req.File.Content) == 0 {
		return nil, canonical.NewInvalidInputError("file", "image content is required")
	}

	path := nsfwPath + "?api_key=" + url.QueryEscape(a.apiKey)
	var wire nsfwResponse
	original, err := a.client.PostMultipart(ctx, path, "image", req.File.Name, req.File.Content, nil, &wire)
	if err != nil {
		return nil, err
	}
	if err := wire.vendorError(); err != nil {
		return nil, err
	}

	return &canonical.Response[canonical.ExplicitContent]{
		Original:     original,
		Standardized: toExplicitContent(&wire),
	}, nil
}

// toExplicitContent normalizes the per-class probabilities. The overall
// nsfw likelihood is the maximum over the unsafe categories.
func toExplicitContent(wire *nsfwResponse) canonical.ExplicitContent {
	classes := wire.classes()

	labels := make([]string, 0, len(classes))
	for label := range classes {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	items := make([]canonical.ExplicitItem, 0, len(labels))
	nsfw := 0
	for _, label := range labels {
		likelihood := canonical.LikelihoodFromScore(classes[label])
		items = append(items, canonical.ExplicitItem{Label: label, Likelihood: likelihood})
		if !isSafeLabel(label) && likelihood > nsfw {
			nsfw = likelihood
		}
	}

	return canonical.ExplicitContent{
		NSFWLikelihood: nsfw,
		Items:          items,
	}
}

func isSafeLabel(label string) bool {
	switch strings.ToLower(label) {
	case "sfw", "safe", "neutral":
		return true
	}
	return false
}
