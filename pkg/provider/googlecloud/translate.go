package googlecloud

import "github.com/Jiyath5516F/edenai-apis/pkg/canonical"

// toNamedEntityRecognition normalizes an analyzeEntities payload.
// Salience maps onto importance; the optional wikipedia link onto url.
func toNamedEntityRecognition(wire *analyzeEntitiesResponse) canonical.NamedEntityRecognition {
	items := make([]canonical.NamedEntity, 0, len(wire.Entities))
	for _, e := range wire.Entities {
		items = append(items, canonical.NamedEntity{
			Entity:     e.Name,
			Category:   e.Type,
			Importance: canonical.Float(e.Salience),
			URL:        canonical.Str(e.Metadata["wikipedia_url"]),
		})
	}
	return canonical.NamedEntityRecognition{Items: items}
}

// toAutomaticTranslation normalizes a Translation v2 payload.
func toAutomaticTranslation(wire *translateResponse) (*canonical.AutomaticTranslation, error) {
	if len(wire.Data.Translations) == 0 {
		return nil, canonical.NewProviderError(providerName, "response carries no translation")
	}
	return &canonical.AutomaticTranslation{
		Text: wire.Data.Translations[0].TranslatedText,
	}, nil
}
