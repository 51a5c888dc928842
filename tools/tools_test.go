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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milochristiansen/moneysan"
	"github.com/milochristiansen/moneysan/report"
)

const allFlags = FlagInput | FlagOutput | FlagInPlace | FlagVerbose | FlagConfig | FlagVerify

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()

	p, err := OutputPath("/data/export.qif", "", false)
	require.NoError(t, err)
	assert.Equal(t, "/data/export.sanitized.qif", p)

	p, err = OutputPath("/data/export", "", false)
	require.NoError(t, err)
	assert.Equal(t, "/data/export.sanitized", p)

	p, err = OutputPath("/data/export.ofx", "", true)
	require.NoError(t, err)
	assert.Equal(t, "/data/export.ofx", p)

	p, err = OutputPath("/data/export.ofx", filepath.Join(dir, "out.ofx"), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.ofx"), p)

	_, err = OutputPath("/data/export.ofx", dir, false)
	assert.ErrorIs(t, err, ErrOutputIsDir)
}

func TestWriteOutputCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.qif")
	require.NoError(t, WriteOutput(path, []byte("x\r\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\r\n", string(data))
}

func TestWriteInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.qif")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0666))

	require.NoError(t, WriteInPlace(path, []byte("new")))

	data, err := ReadInput(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, moneysan.DefaultConfig(), cfg)

	dir := t.TempDir()
	path := filepath.Join(dir, "limits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("qif:\n  max_splits: 10\nofx:\n  name_length: 64\n"), 0666))

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.QIF.MaxSplits)
	assert.Equal(t, 80, cfg.QIF.PayeeLength)
	assert.Equal(t, 64, cfg.OFX.NameLength)
	assert.Equal(t, 255, cfg.OFX.MemoLength)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0666))
	cfg, err = LoadConfig(empty)
	require.NoError(t, err)
	assert.Equal(t, moneysan.DefaultConfig(), cfg)

	typo := filepath.Join(dir, "typo.yaml")
	require.NoError(t, os.WriteFile(typo, []byte("qif:\n  max_split: 10\n"), 0666))
	_, err = LoadConfig(typo)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFlags(t *testing.T) {
	fs := CommonFlagSet(allFlags, "usage")
	require.NoError(t, fs.ParseArgs([]string{"-input", "a.qif", "-verbose", "-config", "c.yaml"}))
	assert.Equal(t, "a.qif", fs.Input)
	assert.True(t, fs.Verbose)
	assert.Equal(t, "c.yaml", fs.Config)
	assert.False(t, fs.InPlace)

	fs = CommonFlagSet(allFlags, "usage")
	assert.ErrorIs(t, fs.ParseArgs([]string{"-verbose"}), ErrNoInput)

	fs = CommonFlagSet(allFlags, "usage")
	assert.ErrorIs(t, fs.ParseArgs([]string{"-input", "a.qif", "-in-place", "-output", "b.qif"}), ErrExclusive)
}

func TestHandleErr(t *testing.T) {
	buf := &bytes.Buffer{}
	code := -1
	Stderr, Exit = buf, func(c int) { code = c }
	defer func() { Stderr, Exit = os.Stderr, os.Exit }()

	HandleErr(nil)
	assert.Equal(t, -1, code)

	HandleErr(errors.New("Boom."))
	assert.Equal(t, 1, code)
	assert.Equal(t, "Boom.\n", buf.String())
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.qif")
	require.NoError(t, os.WriteFile(input, []byte("!Type:Bank\nD1/2/2024\nT1\nPZoë\n^\nDbad\nT2\n^\n"), 0666))

	logs := &bytes.Buffer{}
	fs := CommonFlagSet(allFlags, "usage")
	require.NoError(t, fs.ParseArgs([]string{"-input", input, "-verbose"}))
	require.NoError(t, Run(fs, zerolog.New(logs)))

	data, err := os.ReadFile(filepath.Join(dir, "export.sanitized.qif"))
	require.NoError(t, err)
	assert.Equal(t, "!Type:BANK\r\nD01/02/2024\r\nT1.00\r\nPZoe\r\n^\r\n", string(data))

	assert.Contains(t, logs.String(), `"record_errors":1`)
	assert.Contains(t, logs.String(), `"kind":"record error"`)
}

func TestRunFatalWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.qif")
	require.NoError(t, os.WriteFile(input, []byte("!Type:Bank\nDbad\nT2\n^\n"), 0666))

	fs := CommonFlagSet(allFlags, "usage")
	require.NoError(t, fs.ParseArgs([]string{"-input", input, "-in-place"}))
	err := Run(fs, zerolog.Nop())
	assert.ErrorIs(t, err, report.ErrNoData)

	data, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, "!Type:Bank\nDbad\nT2\n^\n", string(data), "input must be untouched")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
