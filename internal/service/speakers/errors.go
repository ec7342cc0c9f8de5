package speakers

import (
	"fmt"

	"ai-speaker-segmentation-service/internal/models"
)

// ErrorKind classifies stream errors. None of them are retriable: each
// indicates either a caller-correctable misconfiguration or an
// unrecoverable inconsistency between the two input series.
type ErrorKind int

const (
	// KindConfiguration - the upstream recognizer session is missing a
	// required capability. The session stays open; the caller decides
	// whether to continue.
	KindConfiguration ErrorKind = iota
	// KindMismatch - word timestamps and speaker labels could not be
	// aligned, either mid-stream or at end-of-stream.
	KindMismatch
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "CONFIGURATION"
	case KindMismatch:
		return "MISMATCH"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", k)
	}
}

// StreamError is a stream-level error delivered through the session sink.
// Mismatch errors carry the offending label, the paired timestamp if one
// existed at that index, and snapshot copies of both collections taken at
// signaling time, so the error stays diagnosable after further mutation.
type StreamError struct {
	Kind    ErrorKind
	Message string

	Label      *models.SpeakerLabel
	Timestamp  *models.WordTimestamp
	Timestamps []models.WordTimestamp
	Labels     []models.SpeakerLabel
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
