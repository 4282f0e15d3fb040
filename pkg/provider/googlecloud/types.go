package googlecloud

// Wire types for the Natural Language and Translation v2 REST APIs.

type document struct {
	Type     string `json:"type"`
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

type analyzeEntitiesRequest struct {
	Document     document `json:"document"`
	EncodingType string   `json:"encodingType"`
}

type analyzeEntitiesResponse struct {
	Entities []entity `json:"entities"`
	Language string   `json:"language"`
}

type entity struct {
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Salience float64           `json:"salience"`
	Metadata map[string]string `json:"metadata"`
}

type translateRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source,omitempty"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}
