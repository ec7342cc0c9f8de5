package events

import (
	"context"
	"testing"

	"ai-speaker-segmentation-service/internal/models"
)

func TestNew_DisabledMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"nil config", nil},
		{"disabled", &Config{Enabled: false, Brokers: []string{"localhost:9092"}}},
		{"no brokers", &Config{Enabled: true, Brokers: []string{}}},
		{"nil brokers", &Config{Enabled: true, Brokers: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.cfg)
			if p == nil {
				t.Fatal("expected non-nil publisher")
			}
			if p.enabled {
				t.Error("expected publisher to be disabled")
			}
			if p.writer != nil {
				t.Error("expected nil writer when disabled")
			}
		})
	}
}

func TestNew_ConfigValues(t *testing.T) {
	cfg := &Config{
		Enabled:   false,
		Brokers:   []string{"localhost:9092"},
		Topic:     "test.segments",
		Principal: "test-principal",
	}

	p := New(cfg)

	if p.principal != "test-principal" {
		t.Errorf("expected principal 'test-principal', got %s", p.principal)
	}
	if p.topic != "test.segments" {
		t.Errorf("expected topic 'test.segments', got %s", p.topic)
	}
}

func TestPublishSegments_Disabled(t *testing.T) {
	p := New(&Config{Enabled: false})

	res := models.SegmentedResult{
		Results: []models.Segment{{Speaker: 1, Transcript: "Yes ", Final: true}},
	}
	if err := p.PublishSegments(context.Background(), "session-1", res); err != nil {
		t.Errorf("expected no error when disabled, got %v", err)
	}
}

func TestClose_Disabled(t *testing.T) {
	p := New(&Config{Enabled: false})
	if err := p.Close(); err != nil {
		t.Errorf("expected no error closing disabled publisher, got %v", err)
	}
}
