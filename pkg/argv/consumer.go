// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"os/exec"
)

// Consumer accumulates argument tokens in the order they are added.
type Consumer interface {
	// AddArg appends a single token.
	AddArg(arg string)
	// AddArgs appends tokens in order.
	AddArgs(args ...string)
}

// AddArgSet appends the unnamed rendering of v to c and reports whether
// anything was added.
func AddArgSet(c Consumer, v any) bool {
	return AddUnnamed(c, v)
}

// Args is a flat token list.
type Args []string

func (a *Args) AddArg(arg string) {
	*a = append(*a, arg)
}

func (a *Args) AddArgs(args ...string) {
	*a = append(*a, args...)
}

// Line joins tokens into a single string separated by one space. The zero
// value is an empty line.
type Line struct {
	buf []byte
	n   int
}

func (l *Line) AddArg(arg string) {
	if l.n > 0 {
		l.buf = append(l.buf, ' ')
	}
	l.n++
	l.buf = append(l.buf, arg...)
}

func (l *Line) AddArgs(args ...string) {
	for _, a := range args {
		l.AddArg(a)
	}
}

// String returns the joined tokens.
func (l Line) String() string {
	return string(l.buf)
}

// Command returns a Consumer appending to cmd.Args.
func Command(cmd *exec.Cmd) Consumer {
	return cmdConsumer{cmd}
}

type cmdConsumer struct {
	cmd *exec.Cmd
}

func (c cmdConsumer) AddArg(arg string) {
	c.cmd.Args = append(c.cmd.Args, arg)
}

func (c cmdConsumer) AddArgs(args ...string) {
	c.cmd.Args = append(c.cmd.Args, args...)
}
