package canonical

// SpeechRequest is the input of audio/speech_to_text_async.
type SpeechRequest struct {
	File            FileInput `json:"file"`
	Language        string    `json:"language"`
	Speakers        int       `json:"speakers"`
	ProfanityFilter bool      `json:"profanity_filter"`
	Vocabulary      []string  `json:"vocabulary"`
}

// DiarizationEntry is one word or segment attributed to a speaker.
// Start and end times are second offsets encoded as strings, matching
// the canonical schema.
type DiarizationEntry struct {
	Segment    string   `json:"segment"`
	Speaker    int      `json:"speaker"`
	StartTime  *string  `json:"start_time"`
	EndTime    *string  `json:"end_time"`
	Confidence *float64 `json:"confidence"`
}

// Diarization is the speaker attribution of a transcript.
// ErrorMessage is set when the vendor could not diarize the input.
type Diarization struct {
	TotalSpeakers int                `json:"total_speakers"`
	Entries       []DiarizationEntry `json:"entries"`
	ErrorMessage  *string            `json:"error_message"`
}

// SpeechToText is the standardized record of audio/speech_to_text_async.
type SpeechToText struct {
	Text        string      `json:"text"`
	Diarization Diarization `json:"diarization"`
}
