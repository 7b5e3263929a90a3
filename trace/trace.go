// Package trace records the progress of grammar passes through an hclog
// logger.
package trace

import (
	"io"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mfroeh/gogram/grammar"
)

// Trace implements grammar.Trace. Events are logged at trace level, spans at
// debug level.
type Trace struct {
	log hclog.Logger
}

var _ grammar.Trace = (*Trace)(nil)

func New(log hclog.Logger) *Trace {
	return &Trace{log: log}
}

// NewLogger returns the logger the command line uses. level is one of the
// hclog level names.
func NewLogger(level string, w io.Writer, color bool) hclog.Logger {
	colorOpt := hclog.ColorOff
	if color {
		colorOpt = hclog.AutoColor
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "gogram",
		Level:  hclog.LevelFromString(level),
		Output: w,
		Color:  colorOpt,
	})
}

func (t *Trace) Enabled() bool {
	return t.log.IsTrace()
}

func (t *Trace) Event(msg string, args ...any) {
	t.log.Trace(msg, args...)
}

func (t *Trace) Span(name string, args ...any) grammar.Span {
	log := t.log.Named(name)
	if log.IsDebug() {
		log.Debug("start", args...)
	}
	return &span{log: log, start: time.Now()}
}

type span struct {
	log   hclog.Logger
	start time.Time
}

func (s *span) End(args ...any) {
	if !s.log.IsDebug() {
		return
	}
	s.log.Debug("end", append(args, "elapsed", time.Since(s.start))...)
}
