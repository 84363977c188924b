// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"os/exec"
	"reflect"
	"testing"
)

func TestArgs(t *testing.T) {
	var a Args
	a.AddArg("one")
	a.AddArgs("two", "three")
	a.AddArgs()
	want := Args{"one", "two", "three"}
	if !reflect.DeepEqual(a, want) {
		t.Errorf("Args = %q, want %q", a, want)
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{name: "empty", tokens: nil, want: ""},
		{name: "single", tokens: []string{"x"}, want: "x"},
		{name: "several", tokens: []string{"x", "--foo", "42"}, want: "x --foo 42"},
		{name: "empty first token", tokens: []string{"", "a"}, want: " a"},
		{name: "token with space", tokens: []string{"a b", "c"}, want: "a b c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Line
			l.AddArgs(tt.tokens...)
			if got := l.String(); got != tt.want {
				t.Errorf("Line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommand(t *testing.T) {
	cmd := exec.Command("docker", "compose")
	c := Command(cmd)
	c.AddArg("up")
	c.AddArgs("-d", "web")
	want := []string{"docker", "compose", "up", "-d", "web"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("cmd.Args = %q, want %q", cmd.Args, want)
	}
}

func TestAddArgSet(t *testing.T) {
	var a Args
	a.AddArg("run")
	if !AddArgSet(&a, []int{1, 2}) {
		t.Errorf("AddArgSet(non-empty) = false, want true")
	}
	if AddArgSet(&a, []int{}) {
		t.Errorf("AddArgSet(empty) = true, want false")
	}
	want := Args{"run", "1", "2"}
	if !reflect.DeepEqual(a, want) {
		t.Errorf("Args = %q, want %q", a, want)
	}
}
