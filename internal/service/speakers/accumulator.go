package speakers

import (
	"sort"

	"ai-speaker-segmentation-service/internal/models"
)

// Accumulator holds the two growing collections for one session: finalized
// word timestamps (append-only) and speaker labels (append-and-reconcile,
// since later updates may revise earlier provisional labels).
//
// The target invariant - equal lengths with matching spans index-for-index -
// does not necessarily hold mid-stream; alignment is validated per round by
// the segmenter.
type Accumulator struct {
	timestamps []models.WordTimestamp
	labels     []models.SpeakerLabel
}

// AppendTimestamps appends finalized word timestamps. No validation against
// labels happens here.
func (a *Accumulator) AppendTimestamps(words []models.WordTimestamp) {
	a.timestamps = append(a.timestamps, words...)
}

// MergeLabels reconciles incoming labels into the collection. Any existing
// label whose (from, to) span exactly matches an incoming one is discarded:
// a provisional assignment for that span is being revised. The incoming
// labels are then appended and the whole collection is re-sorted
// chronologically, because ordering across successive updates is not
// guaranteed. Returns the number of labels that were revised away.
func (a *Accumulator) MergeLabels(incoming []models.SpeakerLabel) int {
	if len(incoming) == 0 {
		return 0
	}

	kept := a.labels[:0]
	revised := 0
	for _, l := range a.labels {
		if hasSpan(incoming, l.From, l.To) {
			revised++
			continue
		}
		kept = append(kept, l)
	}
	a.labels = append(kept, incoming...)

	sort.SliceStable(a.labels, func(i, j int) bool {
		if a.labels[i].From != a.labels[j].From {
			return a.labels[i].From < a.labels[j].From
		}
		return a.labels[i].To < a.labels[j].To
	})
	return revised
}

func hasSpan(labels []models.SpeakerLabel, from, to float64) bool {
	for _, l := range labels {
		if l.From == from && l.To == to {
			return true
		}
	}
	return false
}

// IsFinal reports whether the chronologically last label is final. This is
// the sole source of truth for whether a round's output is final: by
// convention only the last labeled word of a session ever carries
// final=true, everything before it stays provisional.
func (a *Accumulator) IsFinal() bool {
	if len(a.labels) == 0 {
		return false
	}
	return a.labels[len(a.labels)-1].Final
}

// Counts returns the current sizes of both collections.
func (a *Accumulator) Counts() (timestamps, labels int) {
	return len(a.timestamps), len(a.labels)
}

// SnapshotTimestamps returns a copy of the timestamp collection. Snapshots
// are attached to error signals, which may outlive further mutation.
func (a *Accumulator) SnapshotTimestamps() []models.WordTimestamp {
	return append([]models.WordTimestamp(nil), a.timestamps...)
}

// SnapshotLabels returns a copy of the label collection.
func (a *Accumulator) SnapshotLabels() []models.SpeakerLabel {
	return append([]models.SpeakerLabel(nil), a.labels...)
}
