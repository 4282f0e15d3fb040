package assemblyai

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptRequest struct {
	AudioURL          string   `json:"audio_url"`
	LanguageCode      string   `json:"language_code,omitempty"`
	LanguageDetection bool     `json:"language_detection,omitempty"`
	SpeakerLabels     bool     `json:"speaker_labels,omitempty"`
	FilterProfanity   bool     `json:"filter_profanity,omitempty"`
	WordBoost         []string `json:"word_boost,omitempty"`
}

// clearOption drops a vendor-rejected option from the request. It
// reports whether the parameter was one it knows how to drop.
func (r *transcriptRequest) clearOption(param string) bool {
	switch param {
	case "speaker_labels":
		r.SpeakerLabels = false
	case "filter_profanity":
		r.FilterProfanity = false
	case "word_boost":
		r.WordBoost = nil
	default:
		return false
	}
	return true
}

type transcriptWord struct {
	Text       string   `json:"text"`
	Start      float64  `json:"start"` // milliseconds
	End        float64  `json:"end"`
	Confidence *float64 `json:"confidence"`
}

type transcriptUtterance struct {
	Speaker string           `json:"speaker"` // "A", "B", ...
	Words   []transcriptWord `json:"words"`
}

type transcriptResponse struct {
	ID         string                `json:"id"`
	Status     string                `json:"status"` // queued, processing, completed, error
	Error      string                `json:"error"`
	Text       string                `json:"text"`
	Utterances []transcriptUtterance `json:"utterances"`
}
