// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argvgen generates argv.Arg implementations from annotated type
// declarations. It is the library behind cmd/argvgen.
package argvgen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// Package is a parsed and type-checked Go package.
type Package struct {
	Name  string
	Path  string
	Dir   string
	Fset  *token.FileSet
	Files []*ast.File
	Types *types.Package
}

// Load loads the package in dir. The file called skip, typically a
// previous output of the generator, is reduced to its package clause so
// stale generated code does not affect the result.
func Load(dir, tags, skip string) (*Package, error) {
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:  dir,
		Fset: fset,
		ParseFile: func(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
			mode := parser.ParseComments
			if skip != "" && filepath.Base(filename) == skip {
				mode = parser.PackageClauseOnly
			}
			return parser.ParseFile(fset, filename, src, mode)
		},
	}
	if tags != "" {
		cfg.BuildFlags = []string{"-tags=" + tags}
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("loading package in %s: %w", dir, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("loading package in %s: found %d packages, want 1", dir, len(pkgs))
	}
	p := pkgs[0]
	if len(p.Errors) > 0 {
		var errs []error
		for _, e := range p.Errors {
			errs = append(errs, e)
		}
		return nil, fmt.Errorf("loading %s: %w", p.PkgPath, errors.Join(errs...))
	}
	pkgDir := dir
	if len(p.GoFiles) > 0 {
		pkgDir = filepath.Dir(p.GoFiles[0])
	}
	return &Package{
		Name:  p.Name,
		Path:  p.PkgPath,
		Dir:   pkgDir,
		Fset:  fset,
		Files: p.Syntax,
		Types: p.Types,
	}, nil
}

// Check type-checks already parsed files as the package path. Imports are
// resolved from source.
func Check(path string, fset *token.FileSet, files []*ast.File) (*Package, error) {
	if len(files) == 0 {
		return nil, errors.New("no files")
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	tpkg, err := conf.Check(path, fset, files, nil)
	if err != nil {
		return nil, fmt.Errorf("type-checking %s: %w", path, err)
	}
	return &Package{
		Name:  tpkg.Name(),
		Path:  path,
		Fset:  fset,
		Files: files,
		Types: tpkg,
	}, nil
}

// ParseSource parses and type-checks a single file of Go source. It is
// mostly useful in tests.
func ParseSource(path, src string) (*Package, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return Check(path, fset, []*ast.File{f})
}
