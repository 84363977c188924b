// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtag

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want FieldOpts
	}{
		{name: "empty", tag: "", want: FieldOpts{}},
		{name: "dash", tag: "-", want: FieldOpts{Skip: true}},
		{name: "skip", tag: "skip", want: FieldOpts{Skip: true}},
		{name: "short", tag: "short", want: FieldOpts{Short: true}},
		{name: "position", tag: "position=3", want: FieldOpts{HasPosition: true, Position: 3}},
		{name: "position zero", tag: "position=0", want: FieldOpts{HasPosition: true}},
		{name: "variadic", tag: "variadic", want: FieldOpts{Variadic: true}},
		{name: "rename bare", tag: "rename=some-num", want: FieldOpts{Rename: "some-num"}},
		{name: "rename single quoted", tag: "rename='a,b'", want: FieldOpts{Rename: "a,b"}},
		{name: "rename double quoted", tag: `rename="x"`, want: FieldOpts{Rename: "x"}},
		{name: "formatter", tag: "formatter=Hex", want: FieldOpts{Formatter: "Hex"}},
		{
			name: "combined with spaces",
			tag:  "short, rename=v , formatter=Level",
			want: FieldOpts{Short: true, Rename: "v", Formatter: "Level"},
		},
		{
			name: "later values override",
			tag:  "position=1,rename=a,position=2,rename=b",
			want: FieldOpts{HasPosition: true, Position: 2, Rename: "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseField(tt.tag)
			if err != nil {
				t.Fatalf("ParseField(%q) error = %v", tt.tag, err)
			}
			if got != tt.want {
				t.Errorf("ParseField(%q) = %+v, want %+v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestParseFieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		wantErr error
	}{
		{name: "unknown", tag: "bogus", wantErr: ErrUnknownOption},
		{name: "container option on field", tag: "drop_name", wantErr: ErrUnknownOption},
		{name: "non numeric position", tag: "position=first", wantErr: ErrMalformedLiteral},
		{name: "negative position", tag: "position=-1", wantErr: ErrMalformedLiteral},
		{name: "position overflow", tag: "position=65536", wantErr: ErrMalformedLiteral},
		{name: "position without value", tag: "position", wantErr: ErrMalformedLiteral},
		{name: "skip with value", tag: "skip=true", wantErr: ErrMalformedLiteral},
		{name: "unterminated quote", tag: "rename='x", wantErr: ErrMalformedLiteral},
		{name: "formatter not identifier", tag: "formatter=a.b", wantErr: ErrMalformedLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseField(tt.tag)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseField(%q) error = %v, want %v", tt.tag, err, tt.wantErr)
			}
		})
	}
}

func TestParseContainer(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want ContainerOpts
	}{
		{name: "drop_name", tag: "drop_name", want: ContainerOpts{DropName: true}},
		{name: "to_string", tag: "to_string", want: ContainerOpts{ToString: true}},
		{name: "as_repr", tag: "as_repr", want: ContainerOpts{AsRepr: true}},
		{name: "tuple", tag: "tuple", want: ContainerOpts{Tuple: true}},
		{
			name: "static args",
			tag:  `static_args=['run', "--rm"]`,
			want: ContainerOpts{StaticArgs: []string{"run", "--rm"}},
		},
		{
			name: "static args with comma",
			tag:  "static_args=['a,b'],drop_name",
			want: ContainerOpts{StaticArgs: []string{"a,b"}, DropName: true},
		},
		{
			name: "static args concatenate",
			tag:  "static_args=['a'],static_args=['b']",
			want: ContainerOpts{StaticArgs: []string{"a", "b"}},
		},
		{name: "empty list", tag: "static_args=[]", want: ContainerOpts{}},
		{name: "value", tag: "value='valun'", want: ContainerOpts{HasValue: true, Value: "valun"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseContainer(tt.tag)
			if err != nil {
				t.Fatalf("ParseContainer(%q) error = %v", tt.tag, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseContainer(%q) mismatch (-want +got):\n%s", tt.tag, diff)
			}
		})
	}
}

func TestParseContainerErrors(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		wantErr error
	}{
		{name: "unknown", tag: "repr", wantErr: ErrUnknownOption},
		{name: "field option", tag: "short", wantErr: ErrUnknownOption},
		{name: "bare element", tag: "static_args=[x]", wantErr: ErrMalformedLiteral},
		{name: "number element", tag: "static_args=['a', 1]", wantErr: ErrMalformedLiteral},
		{name: "not a list", tag: "static_args='x'", wantErr: ErrMalformedLiteral},
		{name: "unbalanced", tag: "static_args=['x'", wantErr: ErrMalformedLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContainer(tt.tag)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseContainer(%q) error = %v, want %v", tt.tag, err, tt.wantErr)
			}
		})
	}
}

func TestContainerMerge(t *testing.T) {
	a := ContainerOpts{StaticArgs: []string{"x"}, HasValue: true, Value: "one"}
	b := ContainerOpts{DropName: true, StaticArgs: []string{"y"}, HasValue: true, Value: "two"}
	got := a.Merge(b)
	want := ContainerOpts{DropName: true, StaticArgs: []string{"x", "y"}, HasValue: true, Value: "two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
	if !reflect.DeepEqual(a.StaticArgs, []string{"x"}) {
		t.Errorf("Merge modified receiver: %v", a.StaticArgs)
	}
}

func TestDirective(t *testing.T) {
	if got, ok := Directive("//argv:as_repr"); !ok || got != "as_repr" {
		t.Errorf(`Directive("//argv:as_repr") = %q, %v`, got, ok)
	}
	if _, ok := Directive("// argv:as_repr"); ok {
		t.Errorf("Directive accepted a line with a space after //")
	}
}

func names(fields []Field) []string {
	var out []string
	for _, f := range fields {
		out = append(out, f.Name)
	}
	return out
}

func TestPlanOrder(t *testing.T) {
	tests := []struct {
		name   string
		co     ContainerOpts
		fields []Field
		want   []string
	}{
		{
			name: "variadic positional named",
			fields: []Field{
				{Name: "X", Index: 0, Opts: FieldOpts{Variadic: true}},
				{Name: "Y", Index: 1, Opts: FieldOpts{HasPosition: true, Position: 0}},
				{Name: "Z", Index: 2},
			},
			want: []string{"Z", "Y", "X"},
		},
		{
			name: "positions sorted",
			fields: []Field{
				{Name: "A", Index: 0, Opts: FieldOpts{HasPosition: true, Position: 2}},
				{Name: "B", Index: 1, Opts: FieldOpts{HasPosition: true, Position: 1}},
				{Name: "C", Index: 2},
				{Name: "D", Index: 3},
			},
			want: []string{"C", "D", "B", "A"},
		},
		{
			name: "equal positions keep declaration order",
			fields: []Field{
				{Name: "A", Index: 0, Opts: FieldOpts{HasPosition: true, Position: 1}},
				{Name: "B", Index: 1, Opts: FieldOpts{HasPosition: true, Position: 1}},
			},
			want: []string{"A", "B"},
		},
		{
			name: "skipped fields dropped",
			fields: []Field{
				{Name: "A", Index: 0, Opts: FieldOpts{Skip: true}},
				{Name: "B", Index: 1},
			},
			want: []string{"B"},
		},
		{
			name: "tuple defaults to index positions",
			co:   ContainerOpts{Tuple: true},
			fields: []Field{
				{Name: "S", Index: 0},
				{Name: "N", Index: 1, Opts: FieldOpts{Rename: "some-num"}},
				{Name: "M", Index: 2},
			},
			want: []string{"N", "S", "M"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan("T", tt.co, tt.fields)
			if err != nil {
				t.Fatalf("Plan() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, names(got)); diff != "" {
				t.Errorf("Plan() order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlanErrors(t *testing.T) {
	tests := []struct {
		name    string
		co      ContainerOpts
		fields  []Field
		wantErr error
	}{
		{
			name: "two variadic",
			fields: []Field{
				{Name: "A", Opts: FieldOpts{Variadic: true}},
				{Name: "B", Index: 1, Opts: FieldOpts{Variadic: true}},
			},
			wantErr: ErrConflictingOption,
		},
		{
			name:    "skip on tuple field",
			co:      ContainerOpts{Tuple: true},
			fields:  []Field{{Name: "A", Opts: FieldOpts{Skip: true}}},
			wantErr: ErrConflictingOption,
		},
		{
			name:    "value with fields",
			co:      ContainerOpts{HasValue: true, Value: "x"},
			fields:  []Field{{Name: "A"}},
			wantErr: ErrConflictingOption,
		},
		{
			name:    "to_string and as_repr",
			co:      ContainerOpts{ToString: true, AsRepr: true},
			wantErr: ErrConflictingOption,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan("T", tt.co, tt.fields)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Plan() error = %v, want %v", err, tt.wantErr)
			}
			var e *Error
			if !errors.As(err, &e) || e.Type != "T" {
				t.Errorf("Plan() error = %#v, want *Error with Type T", err)
			}
		})
	}
}

func TestFlagName(t *testing.T) {
	tests := []struct {
		f    Field
		want string
	}{
		{Field{Name: "Verbose"}, "--verbose"},
		{Field{Name: "Verbose", Opts: FieldOpts{Short: true}}, "-verbose"},
		{Field{Name: "N", Opts: FieldOpts{Short: true, Rename: "n"}}, "-n"},
		{Field{Name: "ProjectName", Opts: FieldOpts{Rename: "project-name"}}, "--project-name"},
	}
	for _, tt := range tests {
		if got := tt.f.FlagName(); got != tt.want {
			t.Errorf("FlagName(%+v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := FieldError(&Error{Option: "position", Msg: "bad", Err: ErrMalformedLiteral}, "Build", "Tag")
	const want = `argv: Build.Tag: option "position": bad`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
