package assemblyai

import (
	"strconv"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
)

// toSpeechToText normalizes a completed transcript. Vendor speaker
// labels ("A", "B") become 1-based indexes in order of first
// appearance; word offsets convert from milliseconds to seconds.
func toSpeechToText(wire *transcriptResponse) canonical.SpeechToText {
	speakers := map[string]int{}
	entries := []canonical.DiarizationEntry{}

	for _, utterance := range wire.Utterances {
		tag, seen := speakers[utterance.Speaker]
		if !seen {
			tag = len(speakers) + 1
			speakers[utterance.Speaker] = tag
		}
		for _, word := range utterance.Words {
			entries = append(entries, canonical.DiarizationEntry{
				Segment:    word.Text,
				Speaker:    tag,
				StartTime:  canonical.Str(seconds(word.Start)),
				EndTime:    canonical.Str(seconds(word.End)),
				Confidence: word.Confidence,
			})
		}
	}

	diarization := canonical.Diarization{
		TotalSpeakers: len(speakers),
		Entries:       entries,
	}
	if len(speakers) == 0 {
		diarization.ErrorMessage = canonical.Str("Speaker diarization not available for the data specified")
	}

	return canonical.SpeechToText{
		Text:        wire.Text,
		Diarization: diarization,
	}
}

func seconds(milliseconds float64) string {
	return strconv.FormatFloat(milliseconds/1000, 'f', -1, 64)
}
