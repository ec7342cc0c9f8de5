package speakers

import (
	"fmt"

	"ai-speaker-segmentation-service/internal/models"
)

// wordPair is one index-aligned (timestamp, label) pair.
type wordPair struct {
	ts    models.WordTimestamp
	label models.SpeakerLabel
}

// alignPairs walks the label collection and pairs each label with the
// timestamp at the same index. The timestamp count may exceed the label
// count - trailing unpaired timestamps are simply not processed yet. A
// missing timestamp or a span disagreement is a mismatch: the first one
// found aborts the round, so at most one error is signaled per round.
func alignPairs(acc *Accumulator) ([]wordPair, *StreamError) {
	pairs := make([]wordPair, 0, len(acc.labels))
	for i, label := range acc.labels {
		if i >= len(acc.timestamps) {
			l := label
			return nil, &StreamError{
				Kind:       KindMismatch,
				Message:    fmt.Sprintf("speaker label %d (%.2f-%.2f) has no word timestamp", i, label.From, label.To),
				Label:      &l,
				Timestamps: acc.SnapshotTimestamps(),
				Labels:     acc.SnapshotLabels(),
			}
		}
		ts := acc.timestamps[i]
		if ts.From != label.From || ts.To != label.To {
			l := label
			t := ts
			return nil, &StreamError{
				Kind: KindMismatch,
				Message: fmt.Sprintf("speaker label %d (%.2f-%.2f) does not match word timestamp %q (%.2f-%.2f)",
					i, label.From, label.To, ts.Word, ts.From, ts.To),
				Label:      &l,
				Timestamp:  &t,
				Timestamps: acc.SnapshotTimestamps(),
				Labels:     acc.SnapshotLabels(),
			}
		}
		pairs = append(pairs, wordPair{ts: ts, label: label})
	}
	return pairs, nil
}

// groupSegments groups contiguous same-speaker pairs into segments. A new
// segment starts exactly where the speaker differs from the previous pair.
// Words keep their original order; each word joins the transcript with a
// single trailing space. Every segment of the round carries the round-level
// final flag - there is no per-segment finality.
func groupSegments(pairs []wordPair, final bool) []models.Segment {
	var segments []models.Segment
	for _, p := range pairs {
		if len(segments) == 0 || segments[len(segments)-1].Speaker != p.label.Speaker {
			segments = append(segments, models.Segment{
				Speaker: p.label.Speaker,
				Final:   final,
			})
		}
		cur := &segments[len(segments)-1]
		cur.Transcript += p.ts.Word + " "
		cur.Timestamps = append(cur.Timestamps, p.ts)
	}
	return segments
}
