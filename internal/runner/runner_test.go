// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeScript(t *testing.T, dir, name, body string, mode os.FileMode) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), mode); err != nil {
		t.Fatalf("writing %s: %v", p, err)
	}
	return p
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script sibling executables need a POSIX sh")
	}
}

func TestRunClassifiesOutcome(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	writeScript(t, dir, "ok", "exit 0", 0o755)
	writeScript(t, dir, "fail7", "exit 7", 0o755)
	writeScript(t, dir, "noexec", "exit 0", 0o644)
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		command  string
		status   Status
		code     int
		spawned  bool
		checkErr bool
	}{
		{name: "zero exit", command: "ok", status: Success, code: 0, spawned: true},
		{name: "exit seven", command: "fail7", status: NonZeroExit, code: 7, spawned: true},
		{name: "absent", command: "get_object", status: NotFound, code: -1},
		{name: "directory is not an executable", command: "subdir", status: NotFound, code: -1},
		{name: "not executable", command: "noexec", status: LaunchFailed, code: -1, checkErr: true},
	}

	r := New(dir, IOBindings{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Run(context.Background(), tt.command, nil)
			if res.Status != tt.status {
				t.Fatalf("Status = %v, want %v (err: %v)", res.Status, tt.status, res.Err)
			}
			if res.Code != tt.code {
				t.Errorf("Code = %d, want %d", res.Code, tt.code)
			}
			if res.Path != filepath.Join(dir, tt.command) {
				t.Errorf("Path = %q, want %q", res.Path, filepath.Join(dir, tt.command))
			}
			if !tt.spawned && res.Elapsed != 0 {
				t.Errorf("Elapsed = %v for an invocation that spawned nothing", res.Elapsed)
			}
			if res.Elapsed < 0 {
				t.Errorf("Elapsed = %v, want non-negative", res.Elapsed)
			}
			if tt.checkErr && res.Err == nil {
				t.Errorf("Err = nil, want launch error")
			}
		})
	}
}

func TestRunForwardsArgsAndStreams(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	writeScript(t, dir, "set_object", `echo "argv0=$0"; for a in "$@"; do echo "arg=$a"; done; read line; echo "stdin=$line"; echo oops >&2`, 0o755)

	var stdout, stderr bytes.Buffer
	r := New(dir, IOBindings{Stdin: strings.NewReader("piped\n"), Stdout: &stdout, Stderr: &stderr})
	res := r.Run(context.Background(), "set_object", []string{"mydb", "k1", "hello big world"})
	if res.Status != Success {
		t.Fatalf("Status = %v, want success (err: %v)", res.Status, res.Err)
	}

	want := strings.Join([]string{
		"argv0=" + filepath.Join(dir, "set_object"),
		"arg=mydb",
		"arg=k1",
		"arg=hello big world",
		"stdin=piped",
	}, "\n") + "\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
	if stderr.String() != "oops\n" {
		t.Errorf("stderr = %q, want %q", stderr.String(), "oops\n")
	}
}

func TestRunNotFoundSpawnsNothing(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	p := writeScript(t, dir, "close_db", "touch "+marker, 0o755)
	if err := os.Remove(p); err != nil {
		t.Fatal(err)
	}

	res := New(dir, IOBindings{}).Run(context.Background(), "close_db", nil)
	if res.Status != NotFound {
		t.Fatalf("Status = %v, want not found", res.Status)
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Errorf("a process ran even though the executable was removed")
	}
}

func TestSiblingDir(t *testing.T) {
	dir, err := SiblingDir()
	if err != nil {
		t.Fatalf("SiblingDir() error: %v", err)
	}
	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	if dir != filepath.Dir(exe) {
		t.Errorf("SiblingDir() = %q, want %q", dir, filepath.Dir(exe))
	}
}
