// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package golden

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/yeetrun/argv/pkg/argv"
)

// The plain types share the fields and tags of their generated
// counterparts but none of their methods, so they go through reflection.
type (
	plainFlags   Flags
	plainPoint   Point
	plainWrapper Wrapper
	plainOuter   Outer
	plainJob     Job
	plainCount   Count
)

type plainPair[K comparable, V any] Pair[K, V]

// plainFast spells out the options Fast inherits from Mode's directives,
// which reflection cannot see.
type plainFast struct {
	_ argv.Meta `arg:"drop_name,static_args=['--mode'],value='fast'"`
}

func render(v any, named bool) argv.Args {
	var got argv.Args
	if named {
		argv.AddNamed(&got, "--w", v)
	} else {
		argv.AddUnnamed(&got, v)
	}
	return got
}

func TestGeneratedMatchesReflection(t *testing.T) {
	timeout := Seconds(30)
	full := Flags{
		Verbose: true,
		Name:    "web",
		Retries: -2,
		Size:    7,
		Ratio:   0.5,
		Scale:   1.25,
		Timeout: &timeout,
		Delay:   5,
		Target:  host("db"),
		Mask:    255,
		Color:   true,
		Quiet:   true,
		Files:   []string{"a", "b"},
	}
	outer := Outer{Inner: Wrapper{Path: "/x"}, Kept: Point{X: 3, Y: 4}}
	job := Job{Mode: Limited{Rate: 5, Burst: 2}, Level: 1, Count: 3}

	tests := []struct {
		name      string
		named     bool
		generated any
		reflected any // nil if reflection renders the type differently
		want      []string
	}{
		{
			name:      "zero flags",
			generated: Flags{},
			reflected: plainFlags{},
			want:      []string{"--name", "", "--retries", "0", "--size", "0", "--ratio", "0", "--scale", "0", "--delay", "0s", "--mask", "0x0", "--color=off"},
		},
		{
			name:      "flags",
			generated: full,
			reflected: plainFlags(full),
			want: []string{
				"-v", "--name", "web", "--retries", "-2", "--size", "7",
				"--ratio", "0.5", "--scale", "1.25", "--timeout", "30s", "--delay", "5s",
				"--target", "DB", "--mask", "0xff", "--color=on", "a", "b",
			},
		},
		{
			name:      "tuple",
			generated: Point{X: 1, Y: 2, Label: "p"},
			reflected: plainPoint{X: 1, Y: 2, Label: "p"},
			want:      []string{"--label", "p", "1", "2"},
		},
		{
			name:      "drop name",
			named:     true,
			generated: Wrapper{Path: "/tmp"},
			reflected: plainWrapper{Path: "/tmp"},
			want:      []string{"/tmp"},
		},
		{
			name:      "nested",
			generated: outer,
			reflected: plainOuter(outer),
			want:      []string{"/x", "--kept", "--label", "", "3", "4"},
		},
		{
			name:      "unit variant",
			named:     true,
			generated: Fast{},
			reflected: plainFast{},
			want:      []string{"--mode", "fast"},
		},
		{
			name:      "enum field",
			generated: job,
			reflected: plainJob(job),
			want:      []string{"--mode", "--burst", "2", "5", "--level", "level-1", "--n", "3"},
		},
		{
			name:      "generic",
			generated: Pair[string, int]{Key: "k", Value: 1},
			reflected: plainPair[string, int]{Key: "k", Value: 1},
			want:      []string{"k", "1"},
		},
		{
			name:      "to_string",
			generated: Level(2),
			want:      []string{"level-2"},
		},
		{
			name:      "as_repr",
			generated: Count(20),
			reflected: plainCount(20),
			want:      []string{"20"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(tt.generated, tt.named)
			if diff := cmp.Diff(tt.want, []string(got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("generated mismatch (-want +got):\n%s", diff)
			}
			if tt.reflected == nil {
				return
			}
			if _, ok := tt.reflected.(argv.Arg); ok {
				t.Fatalf("%T has an AddUnnamedTo method", tt.reflected)
			}
			got = render(tt.reflected, tt.named)
			if diff := cmp.Diff(tt.want, []string(got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("reflected mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// A nil pointer or interface with a formatter method emits nothing rather
// than calling the method.
func TestNilFormatterReceiver(t *testing.T) {
	got := argv.Collect(Flags{Name: "x"})
	for _, tok := range got {
		if tok == "--timeout" || tok == "--target" {
			t.Errorf("Collect() = %q, want no %s", got, tok)
		}
	}
}

// Level carries only a doc directive, so reflection renders its integer
// value until the generated method exists.
func TestDirectiveOnlyVisibleToGenerator(t *testing.T) {
	type plainLevel Level
	if got := argv.Collect(plainLevel(2)); !cmp.Equal([]string(got), []string{"2"}) {
		t.Errorf("Collect(plainLevel) = %q, want [2]", got)
	}
}
