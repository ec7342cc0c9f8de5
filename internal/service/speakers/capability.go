package speakers

import "ai-speaker-segmentation-service/internal/models"

// MissingCapability reports whether a results-bearing event lacks the
// word-timestamp data this pipeline depends on. Timestamps and speaker
// labeling are a precondition of the whole recognizer session, not of any
// single update, so a results array with no timestamps anywhere means the
// session was started without the required capability.
//
// Pure function; it is the gate for the CONFIGURATION error path only.
func MissingCapability(ev models.RecognitionEvent) bool {
	if len(ev.Results) == 0 {
		return false
	}
	for _, r := range ev.Results {
		for _, alt := range r.Alternatives {
			if len(alt.Timestamps) > 0 {
				return false
			}
		}
	}
	return len(ev.SpeakerLabels) == 0
}
