package reporting

import (
	"context"

	"github.com/shoaib/notekeeper/internal/logging"
)

// LogSink routes error reports and analytics events to the structured
// logger. It stands in for the vendor SDKs (crash reporter, analytics)
// behind the same narrow interfaces the core consumes.
type LogSink struct {
	log logging.Logger
}

// NewLogSink returns a LogSink writing through log.
func NewLogSink(log logging.Logger) *LogSink {
	return &LogSink{log: log.With("component", "reporting")}
}

func (s *LogSink) Report(ctx context.Context, err error) {
	s.log.Error(ctx, "reported error", "error", err)
}

func (s *LogSink) Log(ctx context.Context, msg string) {
	s.log.Info(ctx, msg)
}

func (s *LogSink) SetKey(ctx context.Context, key string, value any) {
	s.log = s.log.With(key, value)
}

func (s *LogSink) Event(ctx context.Context, name string, params map[string]any) {
	args := make([]any, 0, 2*len(params)+2)
	args = append(args, "event", name)
	for k, v := range params {
		args = append(args, k, v)
	}
	s.log.Info(ctx, "analytics event", args...)
}
