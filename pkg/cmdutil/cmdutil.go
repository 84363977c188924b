// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdutil

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/yeetrun/argv/pkg/argv"
)

// NewStdCmd returns a command wired to the process's standard streams.
func NewStdCmd(name string, arg ...string) *exec.Cmd {
	cmd := exec.Command(name, arg...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// NewArgCmd is like NewStdCmd but renders each value in args with argv.
//
//	cmd := cmdutil.NewArgCmd("docker", "compose", up)
func NewArgCmd(name string, args ...any) *exec.Cmd {
	cmd := NewStdCmd(name)
	c := argv.Command(cmd)
	for _, a := range args {
		argv.AddUnnamed(c, a)
	}
	return cmd
}

// CommandLine returns cmd's arguments as a single line, quoting tokens
// that would otherwise be ambiguous.
func CommandLine(cmd *exec.Cmd) string {
	var l argv.Line
	for _, a := range cmd.Args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'\\$") {
			a = strconv.Quote(a)
		}
		l.AddArg(a)
	}
	return l.String()
}

// Confirm asks msg on w and reports whether the answer read from r was yes.
func Confirm(r io.Reader, w io.Writer, msg string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N]: ", msg)

	var confirm string
	_, err := fmt.Fscanln(r, &confirm)
	if err != nil && err.Error() != "unexpected newline" {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return strings.EqualFold(confirm, "y") || strings.EqualFold(confirm, "yes"), nil
}
