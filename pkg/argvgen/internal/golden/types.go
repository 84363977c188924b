// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package golden holds annotated types together with their checked-in
// generated methods. Its tests compare the generated rendering with the
// reflection encoder, and argvgen's tests regenerate argv_gen.go and
// compare it with the checked-in copy.
package golden

import (
	"strconv"
	"strings"

	"github.com/yeetrun/argv/pkg/argv"
)

//go:generate go run github.com/yeetrun/argv/cmd/argvgen --type=Flags,Point,Wrapper,Outer,Mode,Level,Count,Pair,Job

func init() {
	argv.RegisterFormatter("hex", hex)
}

// Seconds is a duration in whole seconds.
type Seconds int

func (s Seconds) Text() string { return strconv.Itoa(int(s)) + "s" }

type Namer interface{ Name() string }

type host string

func (h host) Name() string { return strings.ToUpper(string(h)) }

func hex(n int) string { return "0x" + strconv.FormatInt(int64(n), 16) }

// Toggle renders as name=on or name=off. It has no unnamed form.
type Toggle bool

func (t Toggle) AddTo(name string, c argv.Consumer) bool {
	if t {
		c.AddArg(name + "=on")
	} else {
		c.AddArg(name + "=off")
	}
	return true
}

// Flags covers every fast path of the generator.
type Flags struct {
	Verbose bool `arg:"short,rename=v"`
	Name    string
	Retries int8
	Size    uint32
	Ratio   float32
	Scale   float64
	Timeout *Seconds `arg:"formatter=Text"`
	Delay   Seconds  `arg:"formatter=Text"`
	Target  Namer    `arg:"formatter=Name"`
	Mask    int      `arg:"formatter=hex"`
	Color   Toggle
	Quiet   bool     `arg:"position=0"`
	Files   []string `arg:"variadic"`
}

type Point struct {
	_     argv.Meta `arg:"tuple"`
	X, Y  int
	Label string `arg:"rename=label"`
}

type Wrapper struct {
	_    argv.Meta `arg:"drop_name"`
	Path string    `arg:"position=0"`
}

type Outer struct {
	Inner Wrapper
	Kept  Point
}

// Mode selects how a job runs.
//
//argv:drop_name,static_args=['--mode']
type Mode interface{ isMode() }

type Fast struct {
	_ argv.Meta `arg:"value='fast'"`
}

type Limited struct {
	Rate  int `arg:"position=0"`
	Burst int
}

func (Fast) isMode()    {}
func (Limited) isMode() {}

//argv:to_string
type Level int

func (l Level) String() string { return "level-" + strconv.Itoa(int(l)) }

//argv:as_repr
type Count uint8

type Pair[K comparable, V any] struct {
	Key   K `arg:"position=0"`
	Value V `arg:"position=1"`
}

type Job struct {
	Mode  Mode
	Level Level
	Count Count `arg:"rename=n"`
}
