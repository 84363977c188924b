// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yeetrun/argv/pkg/argv"
)

func TestDryRun(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{
			args: []string{"up", "--dry-run", "--project=demo", "--detach", "--pull=always", "web", "db"},
			want: "docker compose --project-name demo up -d --pull always web db",
		},
		{
			args: []string{"up", "--dry-run", "--timeout=10"},
			want: "docker compose up --timeout 10",
		},
		{
			args: []string{"logs", "--dry-run", "--follow", "--tail=5", "web"},
			want: "docker compose logs -f --tail 5 web",
		},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if err := run(tt.args, strings.NewReader(""), &out); err != nil {
			t.Fatalf("run(%q) error = %v", tt.args, err)
		}
		if got := strings.TrimSpace(out.String()); got != tt.want {
			t.Errorf("run(%q) printed %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestDeclined(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"up", "web"}, strings.NewReader("n\n"), &out)
	if err == nil || err.Error() != "aborted" {
		t.Fatalf("run() error = %v, want aborted", err)
	}
	if !strings.HasPrefix(out.String(), "Run docker compose up web?") {
		t.Errorf("prompt = %q", out.String())
	}
}

func TestInvalidPullPolicy(t *testing.T) {
	if err := run([]string{"up", "--pull=sometimes"}, strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Fatal("run() accepted an invalid pull policy")
	}
}

func TestTailOutOfRange(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"logs", "--dry-run", "--tail=70000"}, strings.NewReader(""), &out)
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("run() error = %v, printed %q; want out of range error", err, out.String())
	}
}

// Types defined from the generated ones share their fields and tags but
// not their methods, so they are rendered by reflection.
type (
	plainCompose Compose
	plainUp      Up
	plainLogs    Logs
)

func TestGeneratedMatchesReflection(t *testing.T) {
	timeout := 3
	tail := TailLines(20)
	compose := Compose{Project: optional("p"), File: optional("c.yaml")}
	up := Up{Detach: true, Wait: true, Timeout: &timeout, Pull: PullMissing{}, Services: []string{"a"}}
	logs := Logs{Tail: &tail}
	tests := []struct {
		generated, reflected any
	}{
		{compose, plainCompose(compose)},
		{up, plainUp(up)},
		{logs, plainLogs(logs)},
		{Compose{}, plainCompose{}},
		{Up{}, plainUp{}},
	}
	for _, tt := range tests {
		got := argv.Collect(tt.generated)
		want := argv.Collect(tt.reflected)
		if strings.Join(got, " ") != strings.Join(want, " ") {
			t.Errorf("%T: generated %q, reflection %q", tt.generated, got, want)
		}
	}
}
