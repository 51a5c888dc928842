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

package moneysan

import (
	"bytes"
	"fmt"

	"github.com/milochristiansen/moneysan/ofx"
	"github.com/milochristiansen/moneysan/qif"
	"github.com/milochristiansen/moneysan/report"
)

// Config holds the importer limits for both formats.
type Config struct {
	QIF qif.Limits `yaml:"qif"`
	OFX ofx.Limits `yaml:"ofx"`
}

// DefaultConfig returns the limits Money actually enforces.
func DefaultConfig() Config {
	return Config{
		QIF: qif.DefaultLimits,
		OFX: ofx.DefaultLimits,
	}
}

// Sanitize detects the format of a file, cleans it up, and returns the result with CRLF line endings. name is only
// used for format detection. Any error is fatal, and means nothing should be written.
func Sanitize(name string, data []byte, cfg Config, sink report.Sink) ([]byte, error) {
	if sink == nil {
		sink = report.Discard
	}

	f, err := Detect(name, data)
	if err != nil {
		return nil, err
	}

	input, legacy := Decode(data)
	if legacy {
		sink.Report(report.Event{
			Kind:   report.Info,
			Format: f.String(),
			Reason: "input is not valid UTF-8, decoded as Windows-1252",
		})
	}

	var lines []string
	switch f {
	case FormatQIF:
		lines, err = qif.Sanitize(input, cfg.QIF, sink)
	case FormatOFX:
		lines, err = ofx.Sanitize(input, cfg.OFX, sink)
	}
	if err != nil {
		return nil, fmt.Errorf("Sanitizing %v as %v: %w", name, f, err)
	}

	buf := new(bytes.Buffer)
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteString("\r\n")
	}
	return buf.Bytes(), nil
}
