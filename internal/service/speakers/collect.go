package speakers

import (
	"github.com/oklog/ulid/v2"

	"ai-speaker-segmentation-service/internal/models"
)

// collector is a Sink that concatenates emissions and keeps the first error.
type collector struct {
	segments []models.Segment
	err      *StreamError
}

func (c *collector) OnResult(res models.SegmentedResult) {
	c.segments = append(c.segments, res.Results...)
}

func (c *collector) OnError(err *StreamError) {
	if c.err == nil {
		c.err = err
	}
}

// Collect runs a complete event sequence through a fresh session and
// returns the concatenation of all emitted results' segments, or the first
// error the stream signaled. It is the non-streaming entry point for
// callers that have the whole recognizer output in hand.
func Collect(events []models.RecognitionEvent) ([]models.Segment, error) {
	c := &collector{}
	sess := NewSession(ulid.Make().String(), c)
	for _, ev := range events {
		sess.Push(ev)
		if c.err != nil {
			return nil, c.err
		}
	}
	sess.Close()
	if c.err != nil {
		return nil, c.err
	}
	return c.segments, nil
}
