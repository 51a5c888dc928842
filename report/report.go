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

/*
Package report carries the non-fatal problems found while sanitizing a file.

The sanitizers never log anything themselves, they hand Events to a Sink and let the caller decide what to do with
them. Fatal problems are plain errors returned up the stack.
*/
package report

import (
	"errors"
	"fmt"
)

// ErrNoData is returned by the sanitizers when every record in the input had to be dropped.
var ErrNoData = errors.New("No data survived sanitization.")

// Kind says how bad an Event is.
type Kind int

// Kind constants for Event.Kind
const (
	Info         Kind = iota // Nothing was lost.
	FieldWarning             // A field was truncated, defaulted, skipped, or lossily transliterated.
	RecordError              // A whole record (or OFX transaction block) was dropped.
)

func (k Kind) String() string {
	switch k {
	case Info:
		return "info"
	case FieldWarning:
		return "field warning"
	case RecordError:
		return "record error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event describes a single thing that happened to the data.
type Event struct {
	Kind   Kind
	Format string // "qif" or "ofx"
	Field  string // Tag the event is about, if any.
	Record int    // 1 based position of the record or transaction block, 0 if not tied to one.
	Line   int    // Source line, 0 if unknown.
	Reason string
}

func (e Event) String() string {
	buf := fmt.Sprintf("%v %v", e.Format, e.Kind)
	if e.Record > 0 {
		buf += fmt.Sprintf(" at record %v", e.Record)
	}
	if e.Line > 0 {
		buf += fmt.Sprintf(" (line %v)", e.Line)
	}
	if e.Field != "" {
		buf += fmt.Sprintf(" [%v]", e.Field)
	}
	return buf + ": " + e.Reason
}

//go:generate mockgen -destination=mocks/mock_sink.go -package=mocks -source=report.go Sink

// Sink receives Events.
type Sink interface {
	Report(e Event)
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(e Event)

func (f SinkFunc) Report(e Event) {
	f(e)
}

// Discard is a Sink that drops everything.
var Discard Sink = SinkFunc(func(Event) {})

// Counter tallies the Events passing through it before handing them on to Next (if not nil).
type Counter struct {
	Next     Sink
	Warnings int
	Errors   int
}

func (c *Counter) Report(e Event) {
	switch e.Kind {
	case FieldWarning:
		c.Warnings++
	case RecordError:
		c.Errors++
	}
	if c.Next != nil {
		c.Next.Report(e)
	}
}

// Collector keeps every Event it is given, in order.
type Collector struct {
	Events []Event
}

func (c *Collector) Report(e Event) {
	c.Events = append(c.Events, e)
}

// Count returns the number of collected Events of the given kind.
func (c *Collector) Count(k Kind) int {
	n := 0
	for _, e := range c.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
