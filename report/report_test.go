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
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	col := &Collector{}
	c := &Counter{Next: col}

	c.Report(Event{Kind: FieldWarning, Reason: "a"})
	c.Report(Event{Kind: FieldWarning, Reason: "b"})
	c.Report(Event{Kind: RecordError, Reason: "c"})
	c.Report(Event{Kind: Info, Reason: "d"})

	assert.Equal(t, 2, c.Warnings)
	assert.Equal(t, 1, c.Errors)
	assert.Len(t, col.Events, 4)
	assert.Equal(t, 2, col.Count(FieldWarning))
	assert.Equal(t, 1, col.Count(RecordError))
}

func TestCounterWithoutNext(t *testing.T) {
	c := &Counter{}
	c.Report(Event{Kind: RecordError})
	assert.Equal(t, 1, c.Errors)
}

func TestEventString(t *testing.T) {
	e := Event{Kind: RecordError, Format: "qif", Record: 3, Line: 12, Field: "D", Reason: "bad date"}
	assert.Equal(t, "qif record error at record 3 (line 12) [D]: bad date", e.String())
}

func TestLogSink(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := NewLogSink(zerolog.New(buf))

	sink.Report(Event{Kind: FieldWarning, Format: "ofx", Field: "NAME", Record: 2, Line: 40, Reason: "truncated"})

	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "ofx", entry["format"])
	assert.Equal(t, "field warning", entry["kind"])
	assert.Equal(t, "NAME", entry["field"])
	assert.Equal(t, float64(2), entry["record"])
	assert.Equal(t, float64(40), entry["line"])
	assert.Equal(t, "truncated", entry["message"])
}

func TestLogSinkOmitsEmptyPosition(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := NewLogSink(zerolog.New(buf))

	sink.Report(Event{Kind: Info, Format: "qif", Reason: "decoded as Windows-1252"})

	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.NotContains(t, entry, "record")
	assert.NotContains(t, entry, "line")
	assert.NotContains(t, entry, "field")
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(buf, false)
	log.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	log = NewLogger(buf, true)
	log.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
