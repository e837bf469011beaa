package ledger

import (
	"sync"

	"github.com/rs/zerolog"
)

// Sink receives the human-readable outcome of every validated operation.
// The presentation layer owns display; the ledger only reports.
type Sink interface {
	SetLog(message string)
}

// LogSink is the default sink. Each status message is written through
// zerolog and the most recent one is retained for the presentation layer
// to poll.
type LogSink struct {
	mu   sync.Mutex
	last string
	log  zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) SetLog(message string) {
	s.mu.Lock()
	s.last = message
	s.mu.Unlock()
	s.log.Info().Str("status", message).Msg("operation status")
}

// Last returns the most recently recorded status message.
func (s *LogSink) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
