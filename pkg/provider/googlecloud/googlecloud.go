// Package googlecloud adapts the Google Cloud Natural Language and
// Translation REST APIs to the unified text and translation features.
package googlecloud

import (
	"context"
	"time"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider/rest"
)

const (
	providerName = "googlecloud"

	defaultLanguageBaseURL    = "https://language.googleapis.com"
	defaultTranslationBaseURL = "https://translation.googleapis.com"
)

// GoogleCloud is the adapter. The two upstream services have distinct
// endpoints, hence two clients.
type GoogleCloud struct {
	apiKey      string
	language    *rest.Client
	translation *rest.Client
}

// New creates the adapter from its settings. BaseURL overrides both
// service endpoints (used by tests against a single mock).
func New(settings provider.Settings) *GoogleCloud {
	languageURL := settings.ExtraOr("language_base_url", defaultLanguageBaseURL)
	translationURL := settings.ExtraOr("translation_base_url", defaultTranslationBaseURL)
	if settings.BaseURL != "" {
		languageURL = settings.BaseURL
		translationURL = settings.BaseURL
	}
	return &GoogleCloud{
		apiKey:      settings.APIKey,
		language:    rest.NewClient(providerName, languageURL, 30*time.Second, nil),
		translation: rest.NewClient(providerName, translationURL, 30*time.Second, nil),
	}
}

// Name implements provider.Vendor.
func (g *GoogleCloud) Name() string { return providerName }

// NamedEntityRecognition implements provider.EntityRecognizer.
func (g *GoogleCloud) NamedEntityRecognition(ctx context.Context, req *canonical.TextRequest) (*canonical.Response[canonical.NamedEntityRecognition], error) {
	body := analyzeEntitiesRequest{
		Document: document{
			Type:     "PLAIN_TEXT",
			Content:  req.Text,
			Language: req.Language,
		},
		EncodingType: "UTF8",
	}

	var wire analyzeEntitiesResponse
	original, err := g.language.PostJSON(ctx, "/v1/documents:analyzeEntities?key="+g.apiKey, body, &wire)
	if err != nil {
		return nil, err
	}

	return &canonical.Response[canonical.NamedEntityRecognition]{
		Original:     original,
		Standardized: toNamedEntityRecognition(&wire),
	}, nil
}

// AutomaticTranslation implements provider.AutomaticTranslator.
func (g *GoogleCloud) AutomaticTranslation(ctx context.Context, req *canonical.TranslationRequest) (*canonical.Response[canonical.AutomaticTranslation], error) {
	body := translateRequest{
		Q:      []string{req.Text},
		Source: req.SourceLanguage,
		Target: req.TargetLanguage,
		Format: "text",
	}

	var wire translateResponse
	original, err := g.translation.PostJSON(ctx, "/language/translate/v2?key="+g.apiKey, body, &wire)
	if err != nil {
		return nil, err
	}

	standardized, err := toAutomaticTranslation(&wire)
	if err != nil {
		return nil, err
	}
	return &canonical.Response[canonical.AutomaticTranslation]{
		Original:     original,
		Standardized: *standardized,
	}, nil
}
