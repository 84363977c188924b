// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argvgen generates argv.Arg methods for annotated types.
//
// It is meant to be run by go generate:
//
//	//go:generate go run github.com/yeetrun/argv/cmd/argvgen --type=Up,Down
//
// Defaults for the flags may be set in an argvgen.toml file in the package
// directory or any of its parents.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/shayne/yargs"
	"github.com/yeetrun/argv/pkg/argvgen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"tailscale.com/util/must"
)

type flagsParsed struct {
	Type    string `flag:"type" help:"Comma-separated list of type names to generate"`
	Output  string `flag:"output" help:"Output file name (default argv_gen.go)"`
	Tags    string `flag:"tags" help:"Build tags used when loading the package"`
	Dump    bool   `flag:"dump" help:"Print the emission plan as YAML instead of writing code"`
	Verbose bool   `flag:"v" help:"Log each generated file"`
	Help    bool   `flag:"help" help:"Show help"`
}

var isTerminalFn = term.IsTerminal

func main() {
	log.SetFlags(0)
	log.SetPrefix("argvgen: ")
	color.NoColor = color.NoColor || !isTerminalFn(int(os.Stderr.Fd()))

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("argvgen:"), err)
		os.Exit(1)
	}
}

func helpConfig() yargs.HelpConfig {
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "argvgen",
			Description: "Generate argv.Arg methods for annotated types",
			Examples: []string{
				"argvgen --type=Up,Down",
				"argvgen --type=Build --dump ./pkg/docker",
				"//go:generate go run github.com/yeetrun/argv/cmd/argvgen --type=Up",
			},
		},
	}
}

func run(args []string, stdout io.Writer) error {
	result, err := yargs.ParseFlags[flagsParsed](args)
	if err != nil {
		return err
	}
	flags := result.Flags
	if flags.Help {
		fmt.Fprint(stdout, yargs.GenerateGlobalHelp(helpConfig(), flagsParsed{}))
		return nil
	}

	dirs := result.Args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	typeNames := splitList(flags.Type)
	command := "argvgen"
	if len(typeNames) > 0 {
		command += " --type=" + strings.Join(typeNames, ",")
	}

	var (
		g       errgroup.Group
		results = make([]*argvgen.Result, len(dirs))
		dumps   = make([]bytes.Buffer, len(dirs))
	)
	for i, dir := range dirs {
		dir = must.Get(filepath.Abs(dir))
		g.Go(func() error {
			req := argvgen.Request{
				Dir:     dir,
				Types:   typeNames,
				Output:  flags.Output,
				Tags:    flags.Tags,
				Command: command,
			}
			if flags.Dump {
				req.Dump = &dumps[i]
			}
			res, err := argvgen.Run(req)
			if err != nil {
				return fmt.Errorf("%s: %w", dir, err)
			}
			results[i] = res
			return nil
		})
	}
	err = g.Wait()

	for i, res := range results {
		if res == nil {
			continue
		}
		if flags.Dump {
			if len(dirs) > 1 {
				fmt.Fprintf(stdout, "# %s\n", res.Package)
			}
			stdout.Write(dumps[i].Bytes())
			continue
		}
		if !flags.Verbose {
			continue
		}
		if res.Config != "" {
			log.Printf("%s: using %s", res.Package, res.Config)
		}
		if res.Written {
			log.Printf("%s: wrote %s (%d types)", res.Package, res.Path, len(res.Specs))
		} else {
			log.Printf("%s: %s is up to date", res.Package, res.Path)
		}
	}
	return err
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
