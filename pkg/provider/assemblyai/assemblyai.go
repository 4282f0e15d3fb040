// Package assemblyai adapts the AssemblyAI transcription API to
// audio/speech_to_text_async. Transcription is asynchronous on the
// vendor side: launch submits the job, result polls it.
package assemblyai

import (
	"context"
	"strings"
	"time"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider/rest"
)

const (
	providerName   = "assemblyai"
	defaultBaseURL = "https://api.assemblyai.com"

	uploadPath     = "/v2/upload"
	transcriptPath = "/v2/transcript"

	// launchAttempts bounds the remove-unsupported-option retry loop.
	launchAttempts = 10
)

// AssemblyAI is the adapter.
type AssemblyAI struct {
	client *rest.Client
}

// New creates the adapter from its settings.
func New(settings provider.Settings) *AssemblyAI {
	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &AssemblyAI{
		client: rest.NewClient(providerName, baseURL, 60*time.Second, map[string]string{
			"Authorization": settings.APIKey,
		}),
	}
}

// Name implements provider.Vendor.
func (a *AssemblyAI) Name() string { return providerName }

// LaunchSpeechToText implements provider.SpeechToTextProvider. When the
// request carries raw audio bytes they are uploaded to the vendor
// first; a file URL is passed through as-is.
func (a *AssemblyAI) LaunchSpeechToText(ctx context.Context, req *canonical.SpeechRequest) (string, error) {
	audioURL := req.File.URL
	if audioURL == "" {
		if len(req.File.Content) == 0 {
			return "", canonical.NewInvalidInputError("file", "audio content or url is required")
		}
		var upload uploadResponse
		if _, err := a.client.PostBytes(ctx, uploadPath, req.File.Content, &upload); err != nil {
			return "", err
		}
		audioURL = upload.UploadURL
	}

	body := transcriptRequest{
		AudioURL:        audioURL,
		SpeakerLabels:   true,
		FilterProfanity: req.ProfanityFilter,
		WordBoost:       req.Vocabulary,
	}
	if req.Language == "" {
		body.LanguageDetection = true
	} else {
		body.LanguageCode = languageCode(req.Language)
	}

	// Some options are rejected for certain languages (e.g.
	// speaker_labels with French). The vendor names the offending
	// parameter in the error; drop it and resubmit.
	var wire transcriptResponse
	for attempt := 0; attempt < launchAttempts; attempt++ {
		_, err := a.client.PostJSON(ctx, transcriptPath, &body, &wire)
		if err == nil {
			return wire.ID, nil
		}
		param, ok := unsupportedOption(err)
		if !ok || !body.clearOption(param) {
			return "", err
		}
	}
	return "", canonical.NewProviderError(providerName, "could not submit transcription job")
}

// SpeechToTextResult implements provider.SpeechToTextProvider.
func (a *AssemblyAI) SpeechToTextResult(ctx context.Context, providerJobID string) (*canonical.AsyncResponse[canonical.SpeechToText], error) {
	var wire transcriptResponse
	original, err := a.client.GetJSON(ctx, transcriptPath+"/"+providerJobID, &wire)
	if err != nil {
		return nil, err
	}

	switch wire.Status {
	case "error":
		return &canonical.AsyncResponse[canonical.SpeechToText]{
			Status:        canonical.JobFailed,
			ProviderJobID: providerJobID,
			Error:         wire.Error,
		}, nil
	case "completed":
		standardized := toSpeechToText(&wire)
		return &canonical.AsyncResponse[canonical.SpeechToText]{
			Status:        canonical.JobSucceeded,
			ProviderJobID: providerJobID,
			Original:      original,
			Standardized:  &standardized,
		}, nil
	default: // queued, processing
		return &canonical.AsyncResponse[canonical.SpeechToText]{
			Status:        canonical.JobPending,
			ProviderJobID: providerJobID,
		}, nil
	}
}

// unsupportedOption extracts the parameter name from a vendor error of
// the form "speaker_labels is not available in this language: speaker_labels".
func unsupportedOption(err error) (string, bool) {
	pe, ok := err.(*canonical.ProviderError)
	if !ok || !strings.Contains(pe.Message, "not available in this language") {
		return "", false
	}
	_, param, found := strings.Cut(pe.Message, ":")
	if !found {
		return "", false
	}
	return strings.TrimSpace(param), true
}

// languageCode maps BCP 47 tags onto the vendor's language codes, which
// use underscores for the regional English variants.
func languageCode(lang string) string {
	lower := strings.ToLower(lang)
	primary, _, regioned := strings.Cut(lower, "-")
	if !regioned {
		return lower
	}
	switch lower {
	case "en-us":
		return "en_us"
	case "en-gb":
		return "en_uk"
	case "en-au":
		return "en_au"
	}
	return primary
}
