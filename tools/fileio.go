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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/teris-io/shortid"
	"gopkg.in/yaml.v3"

	"github.com/milochristiansen/moneysan"
)

// ErrOutputIsDir is returned by OutputPath when the requested output is an existing directory.
var ErrOutputIsDir = errors.New("The output path is a directory, it must be a file.")

// ReadInput reads the whole of the file at path.
func ReadInput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// OutputPath works out where the sanitized file goes: the input itself, the explicit output, or <stem>.sanitized<ext>
// next to the input.
func OutputPath(input, output string, inPlace bool) (string, error) {
	if inPlace {
		return input, nil
	}

	if output != "" {
		info, err := os.Stat(output)
		if err == nil && info.IsDir() {
			return "", ErrOutputIsDir
		}
		return output, nil
	}

	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".sanitized" + ext, nil
}

// WriteOutput writes data to path, creating any missing parent directories.
func WriteOutput(path string, data []byte) error {
	err := os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteInPlace replaces the file at path with data. The data is written to a temporary file next to it first, so
// the original is left alone if anything goes wrong.
func WriteInPlace(path string, data []byte) error {
	idsource := shortid.MustNew(16, shortid.DefaultABC, uint64(time.Now().UnixNano()))
	id, err := idsource.Generate()
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+id+".tmp")
	err = WriteOutput(tmp, data)
	if err != nil {
		os.Remove(tmp)
		return err
	}

	err = os.Rename(tmp, path)
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("Replacing %v: %w", path, err)
	}
	return nil
}

// LoadConfig reads limit overrides from a YAML file. Anything the file leaves out keeps its default. An empty path
// means no overrides.
func LoadConfig(path string) (moneysan.Config, error) {
	cfg := moneysan.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	err = dec.Decode(&cfg)
	if err != nil && err != io.EOF {
		return cfg, fmt.Errorf("Reading config %v: %w", path, err)
	}
	return cfg, nil
}
