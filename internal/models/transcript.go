// Package models defines the wire-level data structures for recognition
// events and segmented transcript results.
package models

import (
	"encoding/json"
	"fmt"
)

// WordTimestamp is a single word with its start and end offsets in seconds.
// On the wire it is a three-element array: ["word", from, to].
type WordTimestamp struct {
	Word string
	From float64
	To   float64
}

// MarshalJSON encodes the word timestamp as ["word", from, to].
func (w WordTimestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{w.Word, w.From, w.To})
}

// UnmarshalJSON decodes the ["word", from, to] tuple form.
func (w *WordTimestamp) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("word timestamp: %w", err)
	}
	if len(tuple) != 3 {
		return fmt.Errorf("word timestamp: expected 3 elements, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &w.Word); err != nil {
		return fmt.Errorf("word timestamp word: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &w.From); err != nil {
		return fmt.Errorf("word timestamp from: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &w.To); err != nil {
		return fmt.Errorf("word timestamp to: %w", err)
	}
	return nil
}

// SpeakerLabel is one diarization label covering a single word span.
// A label with Final=false is provisional: a later update may replace it
// with a different speaker assignment for the same (from, to) span.
type SpeakerLabel struct {
	From       float64 `json:"from"`
	To         float64 `json:"to"`
	Speaker    int     `json:"speaker"`
	Confidence float64 `json:"confidence"`
	Final      bool    `json:"final"`
}

// SpeechAlternative is one hypothesis inside a recognition result.
type SpeechAlternative struct {
	Transcript string          `json:"transcript,omitempty"`
	Confidence float64         `json:"confidence,omitempty"`
	Timestamps []WordTimestamp `json:"timestamps,omitempty"`
}

// SpeechResult is one interim or final recognition result.
type SpeechResult struct {
	Final        bool                `json:"final"`
	Alternatives []SpeechAlternative `json:"alternatives"`
}

// RecognitionEvent is one incremental update from the upstream recognizer.
// Either or both of Results and SpeakerLabels may be present.
type RecognitionEvent struct {
	Results       []SpeechResult `json:"results,omitempty"`
	ResultIndex   int            `json:"result_index,omitempty"`
	SpeakerLabels []SpeakerLabel `json:"speaker_labels,omitempty"`
}

// HasResults reports whether the event carries a results array.
func (e RecognitionEvent) HasResults() bool {
	return e.Results != nil
}

// Segment is a maximal run of consecutive words attributed to one speaker.
type Segment struct {
	Speaker    int             `json:"speaker"`
	Transcript string          `json:"transcript"`
	Timestamps []WordTimestamp `json:"timestamps"`
	Final      bool            `json:"final"`
}

// SegmentedResult is the full conversation-so-far, re-derived on every
// round that produces at least one segment. ResultIndex is always 0
// because each emission replaces the previous one rather than extending it.
type SegmentedResult struct {
	Results     []Segment `json:"results"`
	ResultIndex int       `json:"result_index"`
}

// ErrorEvent is the wire form of a stream error delivered to clients.
type ErrorEvent struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}
