// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "github.com/yeetrun/argv/pkg/argv"

//go:generate go run github.com/yeetrun/argv/cmd/argvgen --type=Compose,Up,Logs,PullPolicy,TailLines

// Compose holds the options shared by every docker compose subcommand.
type Compose struct {
	_ argv.Meta `arg:"static_args=['compose']"`

	Project *string `arg:"rename=project-name"`
	File    *string `arg:"short,rename=f"`
	EnvFile *string `arg:"rename=env-file"`
}

// Up starts services.
type Up struct {
	_ argv.Meta `arg:"static_args=['up']"`

	Detach   bool `arg:"short,rename=d"`
	Build    bool
	Wait     bool
	Timeout  *int
	Pull     PullPolicy
	Services []string `arg:"variadic"`
}

// Logs prints service output.
type Logs struct {
	_ argv.Meta `arg:"static_args=['logs']"`

	Follow   bool       `arg:"short,rename=f"`
	Tail     *TailLines `arg:"rename=tail"`
	Services []string   `arg:"variadic"`
}

// PullPolicy is the value of up's --pull flag. A nil PullPolicy leaves
// the choice to compose.
type PullPolicy interface {
	pullPolicy()
}

type PullAlways struct {
	_ argv.Meta `arg:"value='always'"`
}

type PullMissing struct {
	_ argv.Meta `arg:"value='missing'"`
}

type PullNever struct {
	_ argv.Meta `arg:"value='never'"`
}

func (PullAlways) pullPolicy()  {}
func (PullMissing) pullPolicy() {}
func (PullNever) pullPolicy()   {}

// TailLines is the number of log lines shown per container.
//
//argv:as_repr
type TailLines uint16

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
