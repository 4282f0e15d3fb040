// Package mindee adapts the Mindee document parsing API to the unified
// OCR feature: ocr/invoice_parser and ocr/identity_parser.
package mindee

import (
	"context"
	"time"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider/rest"
)

const (
	providerName   = "mindee"
	defaultBaseURL = "https://api.mindee.net"

	invoicePath  = "/v1/products/mindee/invoices/v4/predict"
	identityPath = "/v1/products/mindee/international_id/v2/predict"
)

// Mindee is the adapter.
type Mindee struct {
	client *rest.Client
}

// New creates the adapter from its settings.
func New(settings provider.Settings) *Mindee {
	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Mindee{
		client: rest.NewClient(providerName, baseURL, 60*time.Second, map[string]string{
			"Authorization": "Token " + settings.APIKey,
		}),
	}
}

// Name implements provider.Vendor.
func (m *Mindee) Name() string { return providerName }

// ParseInvoice implements provider.InvoiceParser.
func (m *Mindee) ParseInvoice(ctx context.Context, req *canonical.OCRRequest) (*canonical.Response[canonical.InvoiceParser], error) {
	if len(req.File.Content) == 0 {
		return nil, canonical.NewInvalidInputError("file", "document content is required")
	}

	var wire predictResponse[invoicePrediction]
	original, err := m.client.PostMultipart(ctx, invoicePath, "document", req.File.Name, req.File.Content, nil, &wire)
	if err != nil {
		return nil, err
	}
	if err := wire.vendorError(); err != nil {
		return nil, err
	}

	return &canonical.Response[canonical.InvoiceParser]{
		Original:     original,
		Standardized: toInvoiceParser(&wire.Document.Inference.Prediction),
	}, nil
}

// ParseIdentity implements provider.IdentityParser.
func (m *Mindee) ParseIdentity(ctx context.Context, req *canonical.OCRRequest) (*canonical.Response[canonical.IdentityParser], error) {
	if len(req.File.Content) == 0 {
		return nil, canonical.NewInvalidInputError("file", "document content is required")
	}

	var wire predictResponse[identityPrediction]
	original, err := m.client.PostMultipart(ctx, identityPath, "document", req.File.Name, req.File.Content, nil, &wire)
	if err != nil {
		return nil, err
	}
	if err := wire.vendorError(); err != nil {
		return nil, err
	}

	return &canonical.Response[canonical.IdentityParser]{
		Original:     original,
		Standardized: toIdentityParser(&wire.Document.Inference.Prediction),
	}, nil
}
