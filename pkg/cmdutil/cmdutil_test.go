// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdutil

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

type psArgs struct {
	All    bool   `arg:"short,rename=a"`
	Format string `arg:"rename=format"`
}

func TestNewArgCmd(t *testing.T) {
	cmd := NewArgCmd("docker", "ps", psArgs{All: true, Format: "{{.ID}}"}, []string{})
	want := []string{"docker", "ps", "-a", "--format", "{{.ID}}"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
}

func TestCommandLine(t *testing.T) {
	cmd := NewStdCmd("echo", "a b", "", "plain")
	want := `echo "a b" "" plain`
	if got := CommandLine(cmd); got != want {
		t.Errorf("CommandLine() = %q, want %q", got, want)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := Confirm(strings.NewReader(tt.in), &out, "Run?")
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if out.String() != "Run? [y/N]: " {
			t.Errorf("prompt = %q", out.String())
		}
	}
}
