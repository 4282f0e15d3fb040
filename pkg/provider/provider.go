package provider

import (
	"context"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
)

// Vendor is the base contract every adapter satisfies.
//
// Implementations must be safe for concurrent use by multiple
// goroutines: one adapter instance serves all requests for its vendor.
type Vendor interface {
	// Name returns the vendor identifier (e.g., "deepl", "mindee").
	Name() string
}

// AutomaticTranslator serves translation/automatic_translation.
type AutomaticTranslator interface {
	Vendor
	AutomaticTranslation(ctx context.Context, req *canonical.TranslationRequest) (*canonical.Response[canonical.AutomaticTranslation], error)
}

// DocumentTranslator serves translation/document_translation.
type DocumentTranslator interface {
	Vendor
	DocumentTranslation(ctx context.Context, req *canonical.DocumentTranslationRequest) (*canonical.Response[canonical.DocumentTranslation], error)
}

// EntityRecognizer serves text/named_entity_recognition.
type EntityRecognizer interface {
	Vendor
	NamedEntityRecognition(ctx context.Context, req *canonical.TextRequest) (*canonical.Response[canonical.NamedEntityRecognition], error)
}

// InvoiceParser serves ocr/invoice_parser.
type InvoiceParser interface {
	Vendor
	ParseInvoice(ctx context.Context, req *canonical.OCRRequest) (*canonical.Response[canonical.InvoiceParser], error)
}

// IdentityParser serves ocr/identity_parser.
type IdentityParser interface {
	Vendor
	ParseIdentity(ctx context.Context, req *canonical.OCRRequest) (*canonical.Response[canonical.IdentityParser], error)
}

// SpeechToTextProvider serves audio/speech_to_text_async. Launch
// returns the vendor job id; Result reports pending until the vendor
// job reaches a terminal state.
type SpeechToTextProvider interface {
	Vendor
	LaunchSpeechToText(ctx context.Context, req *canonical.SpeechRequest) (string, error)
	SpeechToTextResult(ctx context.Context, providerJobID string) (*canonical.AsyncResponse[canonical.SpeechToText], error)
}

// ExplicitContentDetector serves image/explicit_content.
type ExplicitContentDetector interface {
	Vendor
	DetectExplicitContent(ctx context.Context, req *canonical.ImageRequest) (*canonical.Response[canonical.ExplicitContent], error)
}
