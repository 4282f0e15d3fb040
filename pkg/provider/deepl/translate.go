package deepl

import "github.com/Jiyath5516F/edenai-apis/pkg/canonical"

// toAutomaticTranslation normalizes the DeepL translate payload. DeepL
// returns one translation per input text; the unified API sends exactly
// one, so an empty list means the vendor silently dropped the input.
func toAutomaticTranslation(wire *translateResponse) (*canonical.AutomaticTranslation, error) {
	if len(wire.Translations) == 0 {
		return nil, canonical.NewProviderError(providerName, "response carries no translation")
	}
	return &canonical.AutomaticTranslation{
		Text: wire.Translations[0].Text,
	}, nil
}
