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

package qif

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/milochristiansen/moneysan/parse/lex"
	"github.com/milochristiansen/moneysan/report"
	"github.com/milochristiansen/moneysan/text"
)

// ErrRecord explains why a record was dropped.
type ErrRecord struct {
	Position int
	Line     int
	Tag      byte
	Err      error
}

func (err *ErrRecord) Error() string {
	return fmt.Sprintf("Record %v (line %v) dropped, bad %q field: %v", err.Position, err.Line, err.Tag, err.Err)
}

func (err *ErrRecord) Unwrap() error {
	return err.Err
}

type state int

const (
	stateStart  state = iota // Between records.
	stateRecord              // Reading plain fields.
	stateSplit               // Reading split fields.
)

// sanitizer holds the state of a single run.
type sanitizer struct {
	lim  Limits
	sink report.Sink

	out []string

	state  state
	cur    *Record
	dead   *ErrRecord // Set if the current record can't be saved, remaining fields are ignored.
	list   bool       // The current section holds list items.
	header bool       // A !Type header was seen.

	count int // Records seen (and so the position of the current record).
	kept  int
}

// Sanitize cleans up a QIF file and returns its lines, without line terminators. Problems that cost data are sent
// to sink. The only error is report.ErrNoData, returned if no records survived.
func Sanitize(input string, lim Limits, sink report.Sink) ([]string, error) {
	if sink == nil {
		sink = report.Discard
	}
	s := &sanitizer{lim: lim, sink: sink}

	cr := lex.NewCharReader(input, 1)
	for {
		line, at, ok := cr.ReadLine()
		if !ok {
			break
		}
		s.line(line, at.Line)
	}
	s.finish(0, false)

	if !s.header && s.kept > 0 {
		s.warn(0, 0, "", "no !Type header found, the importer may refuse the file")
	}
	if s.kept == 0 {
		return nil, report.ErrNoData
	}
	return s.out, nil
}

func (s *sanitizer) warn(record, line int, field, reason string) {
	s.sink.Report(report.Event{
		Kind:   report.FieldWarning,
		Format: "qif",
		Field:  field,
		Record: record,
		Line:   line,
		Reason: reason,
	})
}

func (s *sanitizer) line(raw string, at int) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}

	if raw[0] == '!' {
		s.finish(at, false)
		s.directive(raw)
		return
	}

	if raw == "^" {
		s.finish(at, true)
		return
	}

	if s.state == stateStart {
		s.count++
		s.cur = &Record{Position: s.count, Line: at}
		s.dead = nil
		s.state = stateRecord
	}
	if s.dead != nil {
		return
	}

	// Tags are printable ASCII, anything else (control characters included) would leak into the output.
	r, size := utf8.DecodeRuneInString(raw)
	if r < '!' || r > '~' {
		s.warn(s.cur.Position, at, "", fmt.Sprintf("unsupported tag %q, line skipped", r))
		return
	}
	s.field(byte(r), raw[size:], at)
}

// directive handles the bang lines.
func (s *sanitizer) directive(raw string) {
	name, value, _ := strings.Cut(raw[1:], ":")

	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TYPE":
		typ, _ := text.ASCII(value)
		typ = strings.ToUpper(typ)
		if typ == "" {
			typ = "BANK"
		}
		s.list = listSections[typ]
		s.header = true
		s.out = append(s.out, "!Type:"+typ)
	case "ACCOUNT":
		s.list = true
		s.out = append(s.out, "!Account")
	default:
		// Options and the like are passed along untouched (other than the usual cleaning).
		clean, _ := text.ASCII(raw)
		s.out = append(s.out, clean)
	}
}

func (s *sanitizer) field(tag byte, raw string, at int) {
	h, ok := transactionTags[tag]
	if s.list {
		h, ok = listTag, true
	}
	if !ok {
		s.warn(s.cur.Position, at, string(tag), "unsupported tag, line skipped")
		return
	}

	value := strings.TrimSpace(raw)
	if value == "" && h.required {
		s.warn(s.cur.Position, at, string(tag), "missing value, line skipped")
		return
	}
	if h.single && s.cur.Has(tag) {
		s.warn(s.cur.Position, at, string(tag), "repeated field, line skipped")
		return
	}

	clean, notes, err := h.normalize(value, s.lim)
	if err != nil {
		s.dead = &ErrRecord{Position: s.cur.Position, Line: at, Tag: tag, Err: err}
		return
	}
	for _, note := range notes {
		s.warn(s.cur.Position, at, string(tag), note)
	}

	f := Field{Tag: tag, Value: clean, Line: at}
	if !h.split {
		s.cur.Fields = append(s.cur.Fields, f)
		s.state = stateRecord
		return
	}

	// S always opens a new split, the others only if the current split already has one or a plain field came
	// in between.
	n := len(s.cur.Splits)
	if n == 0 || tag == 'S' || s.state != stateSplit || s.cur.Splits[n-1].Has(tag) {
		s.cur.Splits = append(s.cur.Splits, Split{At: len(s.cur.Fields)})
		n++
	}
	s.cur.Splits[n-1].Fields = append(s.cur.Splits[n-1].Fields, f)
	s.state = stateSplit
}

// finish closes out the current record, if any. at is the line of the record boundary (0 at end of input), caret is
// true if the boundary was an actual ^ line.
func (s *sanitizer) finish(at int, caret bool) {
	if s.state == stateStart {
		if caret {
			s.warn(0, at, "", "empty record skipped")
		}
		return
	}

	r := s.cur
	s.state = stateStart
	s.cur = nil

	if s.dead != nil {
		s.sink.Report(report.Event{
			Kind:   report.RecordError,
			Format: "qif",
			Field:  string(s.dead.Tag),
			Record: s.dead.Position,
			Line:   s.dead.Line,
			Reason: s.dead.Error(),
		})
		s.dead = nil
		return
	}

	if len(r.Fields) == 0 && len(r.Splits) == 0 {
		s.warn(r.Position, r.Line, "", "record has no usable fields, skipped")
		return
	}

	if s.lim.MaxSplits > 0 && len(r.Splits) > s.lim.MaxSplits {
		s.warn(r.Position, r.Line, "S", fmt.Sprintf("%d splits, only the first %d kept", len(r.Splits), s.lim.MaxSplits))
		r.Splits = r.Splits[:s.lim.MaxSplits]
	}

	if !s.list {
		if !r.Has('D') {
			s.warn(r.Position, r.Line, "D", "record has no date, the importer may reject it")
		}
		if !r.Has('T') && !r.Has('U') {
			s.warn(r.Position, r.Line, "T", "record has no amount, the importer may reject it")
		}
	}

	s.out = append(s.out, r.Lines()...)
	s.kept++
}
