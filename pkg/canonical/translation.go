package canonical

// TranslationRequest is the input of translation/automatic_translation.
type TranslationRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// AutomaticTranslation is the standardized record of
// translation/automatic_translation.
type AutomaticTranslation struct {
	Text string `json:"text"`
}

// DocumentTranslationRequest is the input of
// translation/document_translation.
type DocumentTranslationRequest struct {
	File           FileInput `json:"file"`
	SourceLanguage string    `json:"source_language"`
	TargetLanguage string    `json:"target_language"`
}

// DocumentTranslation is the standardized record of
// translation/document_translation. File holds the translated document
// as base64; FileURL is set instead when the result was uploaded to
// object storage.
type DocumentTranslation struct {
	File    string `json:"file"`
	FileURL string `json:"file_url"`
}
