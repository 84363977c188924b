// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argvgen

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yeetrun/argv/pkg/fileutil"
)

// Request describes one generator run over a package directory. Empty
// fields fall back to the directory's configuration file.
type Request struct {
	Dir     string
	Types   []string
	Output  string
	Tags    string
	Command string

	// Dump, if set, receives the emission plan as YAML and no file is
	// written.
	Dump io.Writer
}

// Result reports what a run did.
type Result struct {
	Package string
	Path    string // generated file
	Written bool   // false if the file was already up to date or Dump was set
	Config  string // configuration file used, if any
	Specs   []*TypeSpec
}

// Run loads the package in req.Dir and generates its argv methods.
func Run(req Request) (*Result, error) {
	cfg, cfgPath, err := LoadConfig(req.Dir)
	if err != nil {
		return nil, err
	}
	if req.Output != "" {
		cfg.Output = req.Output
	}
	if req.Tags != "" {
		cfg.Tags = req.Tags
	}
	if len(req.Types) > 0 {
		cfg.Types = req.Types
	}
	if len(cfg.Types) == 0 {
		return nil, errors.New("no types given")
	}
	output := cfg.OutputName()

	pkg, err := Load(req.Dir, cfg.Tags, output)
	if err != nil {
		return nil, err
	}
	specs, err := Analyze(pkg, cfg.Types)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Package: pkg.Path,
		Path:    filepath.Join(pkg.Dir, output),
		Config:  cfgPath,
		Specs:   specs,
	}
	if req.Dump != nil {
		b, err := Describe(specs)
		if err != nil {
			return nil, fmt.Errorf("describing %s: %w", pkg.Path, err)
		}
		_, err = req.Dump.Write(b)
		return res, err
	}

	src, err := Generate(pkg, specs, Options{Header: cfg.Header, Command: req.Command})
	if err != nil {
		return nil, err
	}
	same, err := fileutil.Unchanged(res.Path, src)
	if err != nil {
		return nil, err
	}
	if same {
		return res, nil
	}
	if err := fileutil.WriteFileAtomic(res.Path, src, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", res.Path, err)
	}
	res.Written = true
	return res, nil
}
