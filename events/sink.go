package events

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/logging"
)

// Sink receives committed events. Emit is fire-and-forget for the governance
// core; a sink error is logged by the caller and never rolls back state.
type Sink interface {
	Emit(...Record) error
}

// Sinks delivers to every sink and joins their errors.
type Sinks []Sink

func (ss Sinks) Emit(rs ...Record) error {
	var failed []string
	for i := range ss {
		if err := ss[i].Emit(rs...); err != nil {
			failed = append(failed, err.Error())
		}
	}

	if len(failed) > 0 {
		return errors.Errorf("failed to emit events: %q", failed)
	}

	return nil
}

// LogSink writes events to logger.
type LogSink struct {
	*logging.Logging
	level zerolog.Level
}

func NewLogSink(level zerolog.Level) *LogSink {
	return &LogSink{
		Logging: logging.NewModuleLogging("event-sink"),
		level:   level,
	}
}

func (s *LogSink) Emit(rs ...Record) error {
	for i := range rs {
		r := rs[i]
		s.Log().WithLevel(s.level).
			Str("event_id", r.ID.String()).
			Stringer("tick", r.Tick).
			Str("name", r.Name).
			Interface("event", r.Event).
			Msg("event")
	}

	return nil
}

// MemorySink keeps events in memory.
type MemorySink struct {
	sync.RWMutex
	records []Record
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Emit(rs ...Record) error {
	s.Lock()
	defer s.Unlock()

	s.records = append(s.records, rs...)

	return nil
}

func (s *MemorySink) Records() []Record {
	s.RLock()
	defer s.RUnlock()

	rs := make([]Record, len(s.records))
	copy(rs, s.records)

	return rs
}

// Names returns the event names in delivery order.
func (s *MemorySink) Names() []string {
	s.RLock()
	defer s.RUnlock()

	ns := make([]string, len(s.records))
	for i := range s.records {
		ns[i] = s.records[i].Name
	}

	return ns
}

func (s *MemorySink) Reset() {
	s.Lock()
	defer s.Unlock()

	s.records = nil
}

// JSONSink writes one json line per event.
type JSONSink struct {
	sync.Mutex
	w io.Writer
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

func (s *JSONSink) Emit(rs ...Record) error {
	s.Lock()
	defer s.Unlock()

	for i := range rs {
		b, err := util.JSONMarshal(rs[i])
		if err != nil {
			return errors.Wrap(err, "failed to marshal event")
		}

		if _, err := s.w.Write(append(b, '\n')); err != nil {
			return errors.Wrap(err, "failed to write event")
		}
	}

	return nil
}
