// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "A", want: []string{"A"}},
		{in: "A, B,,C ", want: []string{"A", "B", "C"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"--help"}, &out); err != nil {
		t.Fatalf("run(--help) error = %v", err)
	}
	if !strings.Contains(out.String(), "argvgen") {
		t.Errorf("help output = %q, want it to mention argvgen", out.String())
	}
}

func TestRunUnknownFlag(t *testing.T) {
	if err := run([]string{"--bogus"}, &bytes.Buffer{}); err == nil {
		t.Fatal("run(--bogus) succeeded")
	}
}

func TestRunMissingTypes(t *testing.T) {
	err := run([]string{t.TempDir()}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "no types") {
		t.Fatalf("run() error = %v, want no types error", err)
	}
}
