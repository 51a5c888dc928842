/*
Copyright 2022 by Milo Christiansen

This software is provided 'as-is', without any express or implied warranty. In
no event will the authors be held liable for any damages arising from the use of
this software.

Permission is granted to anyone to use this software for any purpose, including
commercial applications, and to alter it and redistribute it freely, subject to
the following restrictions:

1. The origin of this software must not be misrepresented; you must not claim
that you wrote the original software. If you use this software in a product, an
acknowledgment in the product documentation would be appreciated but is not
required.

2. Altered source versions must be plainly marked as such, and must not be
misrepresented as being the original software.

3. This notice may not be removed or altered from any source distribution.
*/

package report

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates the console logger used by the command line tools. Verbose output includes debug messages.
func NewLogger(w io.Writer, verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// LogSink writes Events to a zerolog.Logger as structured entries. Anything that lost data is a warning.
type LogSink struct {
	Log zerolog.Logger
}

// NewLogSink returns a Sink logging to l.
func NewLogSink(l zerolog.Logger) *LogSink {
	return &LogSink{Log: l}
}

func (s *LogSink) Report(e Event) {
	var entry *zerolog.Event
	if e.Kind == Info {
		entry = s.Log.Info()
	} else {
		entry = s.Log.Warn()
	}

	entry = entry.Str("format", e.Format).Stringer("kind", e.Kind)
	if e.Field != "" {
		entry = entry.Str("field", e.Field)
	}
	if e.Record > 0 {
		entry = entry.Int("record", e.Record)
	}
	if e.Line > 0 {
		entry = entry.Int("line", e.Line)
	}
	entry.Msg(e.Reason)
}
