package canonical

// TextRequest is the input of text subfeatures operating on plain text.
type TextRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// NamedEntity is one recognized entity of
// text/named_entity_recognition. Importance and URL stay nil when the
// vendor does not score or link entities.
type NamedEntity struct {
	Entity     string   `json:"entity"`
	Category   string   `json:"category"`
	Importance *float64 `json:"importance"`
	URL        *string  `json:"url"`
}

// NamedEntityRecognition is the standardized record of
// text/named_entity_recognition.
type NamedEntityRecognition struct {
	Items []NamedEntity `json:"items"`
}
