package speakers

import (
	"reflect"
	"testing"

	"ai-speaker-segmentation-service/internal/models"
)

func label(from, to float64, speaker int, final bool) models.SpeakerLabel {
	return models.SpeakerLabel{From: from, To: to, Speaker: speaker, Confidence: 0.9, Final: final}
}

func word(w string, from, to float64) models.WordTimestamp {
	return models.WordTimestamp{Word: w, From: from, To: to}
}

func TestMergeLabels_EmptyUpdateIsIdempotent(t *testing.T) {
	acc := &Accumulator{}
	acc.MergeLabels([]models.SpeakerLabel{
		label(0.0, 0.5, 1, false),
		label(0.5, 1.0, 2, false),
	})
	before := acc.SnapshotLabels()

	if revised := acc.MergeLabels(nil); revised != 0 {
		t.Errorf("expected 0 revisions, got %d", revised)
	}

	after := acc.SnapshotLabels()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("expected labels unchanged, got %v, want %v", after, before)
	}
}

func TestMergeLabels_RevisionReplacesSameSpan(t *testing.T) {
	acc := &Accumulator{}
	acc.MergeLabels([]models.SpeakerLabel{label(0.0, 0.5, 1, false)})

	revised := acc.MergeLabels([]models.SpeakerLabel{label(0.0, 0.5, 2, false)})
	if revised != 1 {
		t.Errorf("expected 1 revision, got %d", revised)
	}

	labels := acc.SnapshotLabels()
	if len(labels) != 1 {
		t.Fatalf("expected exactly one label for the span, got %d", len(labels))
	}
	if labels[0].Speaker != 2 {
		t.Errorf("expected speaker 2 after revision, got %d", labels[0].Speaker)
	}
}

func TestMergeLabels_ResortsChronologically(t *testing.T) {
	acc := &Accumulator{}
	acc.MergeLabels([]models.SpeakerLabel{label(1.0, 1.5, 1, false)})
	acc.MergeLabels([]models.SpeakerLabel{
		label(0.0, 0.5, 1, false),
		label(0.5, 1.0, 1, false),
	})

	labels := acc.SnapshotLabels()
	want := []float64{0.0, 0.5, 1.0}
	for i, l := range labels {
		if l.From != want[i] {
			t.Errorf("label %d: expected from %v, got %v", i, want[i], l.From)
		}
	}
}

func TestMergeLabels_TieBreaksOnTo(t *testing.T) {
	acc := &Accumulator{}
	acc.MergeLabels([]models.SpeakerLabel{
		label(0.0, 1.0, 2, false),
		label(0.0, 0.5, 1, false),
	})

	labels := acc.SnapshotLabels()
	if labels[0].To != 0.5 || labels[1].To != 1.0 {
		t.Errorf("expected labels ordered by to ascending, got %v", labels)
	}
}

func TestIsFinal(t *testing.T) {
	tests := []struct {
		name   string
		labels []models.SpeakerLabel
		want   bool
	}{
		{"empty", nil, false},
		{"last provisional", []models.SpeakerLabel{label(0.0, 0.5, 1, true), label(0.5, 1.0, 1, false)}, false},
		{"last final", []models.SpeakerLabel{label(0.0, 0.5, 1, false), label(0.5, 1.0, 1, true)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Accumulator{}
			acc.MergeLabels(tt.labels)
			if got := acc.IsFinal(); got != tt.want {
				t.Errorf("IsFinal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshots_AreCopies(t *testing.T) {
	acc := &Accumulator{}
	acc.AppendTimestamps([]models.WordTimestamp{word("Yes", 0.0, 0.5)})
	acc.MergeLabels([]models.SpeakerLabel{label(0.0, 0.5, 1, false)})

	ts := acc.SnapshotTimestamps()
	ls := acc.SnapshotLabels()
	ts[0].Word = "mutated"
	ls[0].Speaker = 99

	if acc.SnapshotTimestamps()[0].Word != "Yes" {
		t.Error("timestamp snapshot aliases internal state")
	}
	if acc.SnapshotLabels()[0].Speaker != 1 {
		t.Error("label snapshot aliases internal state")
	}
}
