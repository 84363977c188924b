// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argvgen

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/argv/pkg/fileutil"
)

// ConfigName is the file holding generator defaults. It is looked up in
// the package directory and its parents.
const ConfigName = "argvgen.toml"

// Config holds generator defaults. Command-line flags take precedence.
type Config struct {
	// Output is the generated file name, relative to the package directory.
	Output string `toml:"output,omitempty"`
	// Tags are build tags applied when loading packages.
	Tags string `toml:"tags,omitempty"`
	// Header is written at the top of generated files.
	Header string `toml:"header,omitempty"`
	// Types are generated when no types are given on the command line.
	Types []string `toml:"types,omitempty"`
}

// LoadConfig finds and decodes the configuration file for dir. It returns
// an empty Config and path if there is none.
func LoadConfig(dir string) (cfg *Config, path string, err error) {
	path, err = fileutil.FindUp(dir, ConfigName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", err
	}
	cfg = &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, "", fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, path, nil
}

// DefaultOutput is the generated file name used when none is configured.
const DefaultOutput = "argv_gen.go"

// OutputName returns the generated file name.
func (c *Config) OutputName() string {
	if c != nil && c.Output != "" {
		return c.Output
	}
	return DefaultOutput
}
