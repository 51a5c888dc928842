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

package tools

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

const (
	FlagInput   = 1 << iota // The file to sanitize
	FlagOutput              // Explicit output file
	FlagInPlace             // Overwrite the input
	FlagVerbose             // Debug logging and a summary
	FlagConfig              // YAML limits file
	FlagVerify              // Read OFX output back with ofxgo
)

// Errors returned by FlagSet.Validate
var (
	ErrNoInput   = errors.New("An input file is required (-input).")
	ErrExclusive = errors.New("-in-place and -output are mutually exclusive.")
)

// FlagSet is used to store the results from the common flags. Not all of these values will be valid, even if
// their flag is in the set.
type FlagSet struct {
	Input   string
	Output  string
	InPlace bool
	Verbose bool
	Config  string
	Verify  bool

	Flags *flag.FlagSet
}

// CommonFlagSet returns a flagset filled out with your choice of several common flags.
func CommonFlagSet(flags int, usage string) *FlagSet {
	fs := &FlagSet{
		Flags: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}

	if flags&FlagInput != 0 {
		fs.Flags.StringVar(&fs.Input, "input", "", "The QIF or OFX file `path` to sanitize.")
	}

	if flags&FlagOutput != 0 {
		fs.Flags.StringVar(&fs.Output, "output", "", "The output file `path`. Defaults to <input>.sanitized<ext> next to the input.")
	}

	if flags&FlagInPlace != 0 {
		fs.Flags.BoolVar(&fs.InPlace, "in-place", false, "Overwrite the input file.")
	}

	if flags&FlagVerbose != 0 {
		fs.Flags.BoolVar(&fs.Verbose, "verbose", false, "Log debug messages and a summary of everything that was dropped.")
	}

	if flags&FlagConfig != 0 {
		fs.Flags.StringVar(&fs.Config, "config", "", "A YAML `file` overriding the field limits.")
	}

	if flags&FlagVerify != 0 {
		fs.Flags.BoolVar(&fs.Verify, "verify", false, "Check OFX output by parsing it with a real OFX library before writing.")
	}

	fs.Flags.Usage = func() {
		fmt.Fprintln(fs.Flags.Output(), usage)
		fs.Flags.PrintDefaults()
	}

	return fs
}

// Parse parses the command line, exiting with a message if the flags don't make sense.
func (fs *FlagSet) Parse() {
	HandleErr(fs.ParseArgs(os.Args[1:]))
}

// ParseArgs parses the given arguments and validates the result.
func (fs *FlagSet) ParseArgs(args []string) error {
	err := fs.Flags.Parse(args)
	if err != nil {
		return err
	}
	return fs.Validate()
}

// Validate checks the flag combination.
func (fs *FlagSet) Validate() error {
	if fs.Flags.Lookup("input") != nil && fs.Input == "" {
		return ErrNoInput
	}
	if fs.InPlace && fs.Output != "" {
		return ErrExclusive
	}
	return nil
}
