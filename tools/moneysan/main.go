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

package main

import (
	"os"

	"github.com/milochristiansen/moneysan/report"
	"github.com/milochristiansen/moneysan/tools"
)

func main() {
	fs := tools.CommonFlagSet(tools.FlagInput|tools.FlagOutput|tools.FlagInPlace|tools.FlagVerbose|tools.FlagConfig|tools.FlagVerify, usage)
	fs.Parse()

	log := report.NewLogger(os.Stderr, fs.Verbose)
	tools.HandleErr(tools.Run(fs, log))
}

var usage = `Usage:

This program takes a QIF or OFX file and cleans it up so Microsoft Money Sunset Edition will import it. Text is
reduced to plain ASCII, dates and amounts are reformatted, OFX files are rewritten in the old SGML dialect with any
missing required fields filled in, and everything gets Windows line endings.

Anything that had to be dropped or changed is logged. If nothing usable is left the program fails without writing
anything.
`
