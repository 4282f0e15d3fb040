// Package deepl adapts the DeepL API to the unified translation
// feature: translation/automatic_translation and
// translation/document_translation.
package deepl

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Jiyath5516F/edenai-apis/pkg/asyncjob"
	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
	"github.com/Jiyath5516F/edenai-apis/pkg/jsonx"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider/rest"
)

const (
	providerName   = "deepl"
	defaultBaseURL = "https://api.deepl.com"
)

// DeepL is the adapter. One instance serves all requests.
type DeepL struct {
	client *rest.Client
	poller asyncjob.Poller
}

// New creates the adapter from its settings.
func New(settings provider.Settings) *DeepL {
	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &DeepL{
		client: rest.NewClient(providerName, baseURL, 30*time.Second, map[string]string{
			"Authorization": "DeepL-Auth-Key " + settings.APIKey,
		}),
		poller: asyncjob.Poller{MaxAttempts: 10, Interval: 2 * time.Second},
	}
}

// Name implements provider.Vendor.
func (d *DeepL) Name() string { return providerName }

// AutomaticTranslation implements provider.AutomaticTranslator.
func (d *DeepL) AutomaticTranslation(ctx context.Context, req *canonical.TranslationRequest) (*canonical.Response[canonical.AutomaticTranslation], error) {
	form := url.Values{}
	form.Set("text", req.Text)
	form.Set("target_lang", strings.ToUpper(req.TargetLanguage))
	if req.SourceLanguage != "" {
		form.Set("source_lang", strings.ToUpper(req.SourceLanguage))
	}

	var wire translateResponse
	original, err := d.client.PostForm(ctx, "/v2/translate", form, &wire)
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

// DocumentTranslation implements provider.DocumentTranslator. The
// DeepL document flow is upload, poll until done, download; the poll
// uses the shared bounded poller.
func (d *DeepL) DocumentTranslation(ctx context.Context, req *canonical.DocumentTranslationRequest) (*canonical.Response[canonical.DocumentTranslation], error) {
	if len(req.File.Content) == 0 {
		return nil, canonical.NewInvalidInputError("file", "document content is required")
	}

	fields := map[string]string{"target_lang": strings.ToUpper(req.TargetLanguage)}
	if req.SourceLanguage != "" {
		fields["source_lang"] = strings.ToUpper(req.SourceLanguage)
	}

	var up documentUploadResponse
	if _, err := d.client.PostMultipart(ctx, "/v2/document", "file", req.File.Name, req.File.Content, fields, &up); err != nil {
		return nil, err
	}

	statusPath := fmt.Sprintf("/v2/document/%s", up.DocumentID)
	body := map[string]string{"document_key": up.DocumentKey}

	var lastStatus documentStatusResponse
	var lastTree jsonx.Value
	err := d.poller.Poll(ctx, func(ctx context.Context) (asyncjob.Status, error) {
		tree, err := d.client.PostJSON(ctx, statusPath, body, &lastStatus)
		if err != nil {
			return asyncjob.Pending, err
		}
		lastTree = tree
		switch lastStatus.Status {
		case "done":
			return asyncjob.Done, nil
		case "error":
			msg := lastStatus.ErrorMessage
			if msg == "" {
				msg = "document translation failed"
			}
			return asyncjob.Failed, canonical.NewProviderError(providerName, msg)
		default:
			return asyncjob.Pending, nil
		}
	})
	if err != nil {
		return nil, err
	}

	raw, err := d.client.PostRaw(ctx, statusPath+"/result", body)
	if err != nil {
		return nil, err
	}

	return &canonical.Response[canonical.DocumentTranslation]{
		Original: lastTree,
		Standardized: canonical.DocumentTranslation{
			File: base64.StdEncoding.EncodeToString(raw),
		},
	}, nil
}
