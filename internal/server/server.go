// Package server exposes the segmentation core over a websocket stream API.
// Each connection is one recognizer session: every inbound text frame is one
// recognition event, every outbound frame is either a segmented result or a
// stream error. Closing the socket runs the finalization check.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"ai-speaker-segmentation-service/internal/config"
	"ai-speaker-segmentation-service/internal/events"
	"ai-speaker-segmentation-service/internal/models"
	"ai-speaker-segmentation-service/internal/observability/logging"
	"ai-speaker-segmentation-service/internal/observability/metrics"
	"ai-speaker-segmentation-service/internal/service/speakers"
)

// Server handles websocket stream sessions.
type Server struct {
	cfg       *config.Configuration
	publisher *events.Publisher
	upgrader  websocket.Upgrader
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

// New creates a stream server.
func New(cfg *config.Configuration, publisher *events.Publisher) *Server {
	return &Server{
		cfg:       cfg,
		publisher: publisher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		metrics: metrics.DefaultMetrics,
		log:     logging.WithComponent("server"),
	}
}

// Router constructs the HTTP router for the service.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/v1/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/readiness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	r.Get("/v1/stream", s.handleStream)

	return r
}

// handleStream runs one segmentation session over a websocket connection.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sessionId := ulid.Make().String()
	log := logging.WithSession(sessionId)
	conn.SetReadLimit(s.cfg.Stream.MaxMessageBytes)

	s.metrics.RecordSessionStart()
	start := time.Now()
	log.Info().Msg("stream session started")

	sink := &wsSink{
		conn:         conn,
		publisher:    s.publisher,
		sessionId:    sessionId,
		writeTimeout: s.cfg.Stream.WriteTimeout,
		log:          log,
	}
	sess := speakers.NewSession(sessionId, sink)

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Msg("stream read error")
			}
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var ev models.RecognitionEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			log.Warn().Err(err).Msg("dropping undecodable frame")
			continue
		}
		sess.Push(ev)
	}

	sess.Close()
	s.metrics.RecordSessionEnd(time.Since(start).Seconds())
	log.Info().Dur("duration", time.Since(start)).Msg("stream session ended")
}

// wsSink delivers session output back over the socket and to Kafka. All
// calls happen on the connection's read goroutine, so writes need no extra
// locking.
type wsSink struct {
	conn         *websocket.Conn
	publisher    *events.Publisher
	sessionId    string
	writeTimeout time.Duration
	log          zerolog.Logger
}

func (k *wsSink) OnResult(res models.SegmentedResult) {
	k.write(res)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := k.publisher.PublishSegments(ctx, k.sessionId, res); err != nil {
		k.log.Error().Err(err).Msg("failed to publish segmented result")
	}
}

func (k *wsSink) OnError(err *speakers.StreamError) {
	k.write(models.ErrorEvent{
		Kind:  strings.ToLower(err.Kind.String()),
		Error: err.Error(),
	})
}

func (k *wsSink) write(v any) {
	_ = k.conn.SetWriteDeadline(time.Now().Add(k.writeTimeout))
	if err := k.conn.WriteJSON(v); err != nil {
		k.log.Error().Err(err).Msg("failed to write frame")
	}
}
