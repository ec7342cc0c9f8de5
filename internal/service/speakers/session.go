// Package speakers merges two independently-arriving, incrementally-revised
// series - word-level transcription timestamps and speaker-diarization
// labels - into ordered speaker-attributed transcript segments.
//
// A Session is push-based and strictly single-threaded: one update is fully
// processed (accumulation, reconciliation, segmentation, emission) before
// the next is accepted. Segmentation is re-derived from scratch on every
// update because a label revision anywhere in the history can retroactively
// move words between segments.
package speakers

import (
	"fmt"

	"github.com/rs/zerolog"

	"ai-speaker-segmentation-service/internal/models"
	"ai-speaker-segmentation-service/internal/observability/logging"
	"ai-speaker-segmentation-service/internal/observability/metrics"
)

// Sink receives segmented results and stream errors from a session.
// Emissions and errors share one delivery channel so the caller can decide
// per error whether to keep the session alive (configuration errors do not
// close it).
type Sink interface {
	// OnResult is called when a round produces at least one segment.
	OnResult(res models.SegmentedResult)

	// OnError is called when a round signals a stream error. At most one
	// error is signaled per round.
	OnError(err *StreamError)
}

// Session owns the accumulator state for one recognizer stream. It lives
// for the duration of the stream and must not be shared across streams or
// called from multiple goroutines.
type Session struct {
	id     string
	sink   Sink
	acc    Accumulator
	closed bool

	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewSession creates a session delivering output to sink.
func NewSession(id string, sink Sink) *Session {
	return &Session{
		id:      id,
		sink:    sink,
		log:     logging.WithSession(id),
		metrics: metrics.DefaultMetrics,
	}
}

// Push processes one incremental update: classify it, accumulate, then run
// a segmentation round. Updates after Close are ignored.
func (s *Session) Push(ev models.RecognitionEvent) {
	if s.closed {
		return
	}
	s.metrics.RecordEvent()

	if ev.HasResults() {
		if MissingCapability(ev) {
			s.signal(&StreamError{
				Kind:    KindConfiguration,
				Message: "requires that word timestamps and speaker labels be enabled on the recognizer session",
			})
			return
		}
		if words := finalWordTimestamps(ev.Results); len(words) > 0 {
			s.acc.AppendTimestamps(words)
			s.metrics.RecordWords(len(words))
		}
	}

	if len(ev.SpeakerLabels) > 0 {
		revised := s.acc.MergeLabels(ev.SpeakerLabels)
		s.metrics.RecordLabels(len(ev.SpeakerLabels), revised)
	}

	s.round()
}

// Close runs the end-of-stream finalization check. Equal counts mean the
// session ended structurally balanced; anything else is signaled as a
// mismatch with both collections attached. Idempotent.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	nTimestamps, nLabels := s.acc.Counts()
	if nTimestamps == nLabels {
		return
	}

	var msg string
	if nLabels == 0 && nTimestamps > 0 {
		msg = "stream ended with word timestamps but no speaker labels: speaker labeling was never enabled"
	} else {
		msg = fmt.Sprintf("stream ended with %d word timestamps but %d speaker labels", nTimestamps, nLabels)
	}
	s.signal(&StreamError{
		Kind:       KindMismatch,
		Message:    msg,
		Timestamps: s.acc.SnapshotTimestamps(),
		Labels:     s.acc.SnapshotLabels(),
	})
}

// round runs one segmentation pass over the current accumulator state. A
// mismatch aborts the round with no emission; an empty segment list emits
// nothing.
func (s *Session) round() {
	pairs, serr := alignPairs(&s.acc)
	if serr != nil {
		s.signal(serr)
		return
	}

	segments := groupSegments(pairs, s.acc.IsFinal())
	if len(segments) == 0 {
		return
	}

	s.log.Debug().
		Int("segments", len(segments)).
		Bool("final", segments[len(segments)-1].Final).
		Msg("emitting segmented result")
	s.metrics.RecordEmission(len(segments))
	s.sink.OnResult(models.SegmentedResult{Results: segments, ResultIndex: 0})
}

func (s *Session) signal(err *StreamError) {
	s.log.Warn().
		Str("kind", err.Kind.String()).
		Msg(err.Message)
	s.metrics.RecordStreamError(err.Kind.String())
	s.sink.OnError(err)
}

// finalWordTimestamps extracts word timestamps from finalized results only.
// Interim results are skipped entirely: they carry no speaker information
// yet and their text may still change.
func finalWordTimestamps(results []models.SpeechResult) []models.WordTimestamp {
	var words []models.WordTimestamp
	for _, r := range results {
		if !r.Final || len(r.Alternatives) == 0 {
			continue
		}
		words = append(words, r.Alternatives[0].Timestamps...)
	}
	return words
}
