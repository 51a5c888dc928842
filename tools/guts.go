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

// Guts contains the common code behind the command itself, kept here so it can be tested.
package tools

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/milochristiansen/moneysan"
	"github.com/milochristiansen/moneysan/ofx"
	"github.com/milochristiansen/moneysan/report"
)

// Run sanitizes the input named by the flags and writes the result. Nothing is written if any error is returned.
// Events are logged as they happen, and with -verbose a summary is logged at the end.
func Run(fs *FlagSet, log zerolog.Logger) error {
	cfg, err := LoadConfig(fs.Config)
	if err != nil {
		return err
	}

	dest, err := OutputPath(fs.Input, fs.Output, fs.InPlace)
	if err != nil {
		return err
	}

	data, err := ReadInput(fs.Input)
	if err != nil {
		return err
	}

	counter := &report.Counter{Next: report.NewLogSink(log)}
	out, err := moneysan.Sanitize(fs.Input, data, cfg, counter)
	if err != nil {
		return err
	}

	if fs.Verify {
		if f, _ := moneysan.Detect(fs.Input, data); f == moneysan.FormatOFX {
			n, err := ofx.Verify(out)
			if err != nil {
				return fmt.Errorf("Sanitized output failed verification: %w", err)
			}
			log.Debug().Int("statements", n).Msg("output verified")
		}
	}

	if fs.InPlace {
		err = WriteInPlace(dest, out)
	} else {
		err = WriteOutput(dest, out)
	}
	if err != nil {
		return err
	}

	log.Info().Str("output", dest).Msg("sanitized file written")
	if fs.Verbose {
		log.Info().Int("warnings", counter.Warnings).Int("record_errors", counter.Errors).Msg("summary")
	}
	return nil
}
