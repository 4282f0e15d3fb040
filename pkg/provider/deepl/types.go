package deepl

// Wire types for the DeepL v2 API. Only the fields the normalizer
// reads are declared.

type translateResponse struct {
	Translations []translation `json:"translations"`
}

type translation struct {
	DetectedSourceLanguage string `json:"detected_source_language"`
	Text                   string `json:"text"`
}

type documentUploadResponse struct {
	DocumentID  string `json:"document_id"`
	DocumentKey string `json:"document_key"`
}

type documentStatusResponse struct {
	DocumentID       string `json:"document_id"`
	Status           string `json:"status"` // queued, translating, done, error
	SecondsRemaining int    `json:"seconds_remaining"`
	ErrorMessage     string `json:"error_message"`
}
