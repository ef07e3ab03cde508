package system

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestOsRunner_CapturesStdout(t *testing.T) {
	r := &osRunner{}

	res, err := r.Run(context.Background(), "echo hello sandbox", RunOptions{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if strings.TrimSpace(res.Stdout) != "hello sandbox" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "hello sandbox")
	}
}

func TestOsRunner_NonZeroExit(t *testing.T) {
	r := &osRunner{}

	_, err := r.Run(context.Background(), "sh -c 'echo broken >&2; exit 3'", RunOptions{Dir: t.TempDir()})
	if err == nil {
		t.Fatal("Run() should have failed")
	}

	var perr *ProcessError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T, want *ProcessError", err)
	}
	if perr.Reason != ReasonNonZeroExit {
		t.Errorf("Reason = %v, want non-zero exit", perr.Reason)
	}
	if perr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", perr.ExitCode)
	}
	if !strings.Contains(perr.StderrTail, "broken") {
		t.Errorf("StderrTail = %q, should contain 'broken'", perr.StderrTail)
	}
}

func TestOsRunner_Timeout(t *testing.T) {
	r := &osRunner{}

	start := time.Now()
	_, err := r.Run(context.Background(), "sleep 10", RunOptions{
		Dir:     t.TempDir(),
		Timeout: 50 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("Run() should have timed out")
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("timeout did not kill the process promptly")
	}

	var perr *ProcessError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T, want *ProcessError", err)
	}
	if perr.Reason != ReasonTimeout {
		t.Errorf("Reason = %v, want timeout", perr.Reason)
	}
}

func TestOsRunner_EnvOverrides(t *testing.T) {
	r := &osRunner{}

	res, err := r.Run(context.Background(), "sh -c 'echo $SANDBOX_TEST_HINT'", RunOptions{
		Dir: t.TempDir(),
		Env: map[string]string{"SANDBOX_TEST_HINT": "yarn/0.0.0"},
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if strings.TrimSpace(res.Stdout) != "yarn/0.0.0" {
		t.Errorf("Stdout = %q, want env override value", res.Stdout)
	}
}

func TestOsRunner_StartFailed(t *testing.T) {
	r := &osRunner{}

	_, err := r.Run(context.Background(), "definitely-not-a-real-binary-xyz", RunOptions{Dir: t.TempDir()})
	if err == nil {
		t.Fatal("Run() should have failed")
	}

	var perr *ProcessError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T, want *ProcessError", err)
	}
	if perr.Reason != ReasonStartFailed {
		t.Errorf("Reason = %v, want start failed", perr.Reason)
	}
}

func TestMergeEnv_OverridesAmbient(t *testing.T) {
	merged := mergeEnv([]string{"PATH=/usr/bin", "HOME=/root"}, map[string]string{"HOME": "/tmp/sandbox"})

	var home string
	count := 0
	for _, kv := range merged {
		if strings.HasPrefix(kv, "HOME=") {
			home = kv
			count++
		}
	}
	if count != 1 {
		t.Fatalf("HOME appears %d times, want 1", count)
	}
	if home != "HOME=/tmp/sandbox" {
		t.Errorf("HOME = %q, want override", home)
	}
}

func TestTail(t *testing.T) {
	long := strings.Repeat("x", 100) + "tail-end"
	got := tail(long+"\n\n", 8)
	if got != "tail-end" {
		t.Errorf("tail() = %q, want %q", got, "tail-end")
	}

	if got := tail("short", 100); got != "short" {
		t.Errorf("tail() = %q, want %q", got, "short")
	}
}

func TestMockRunner_PrefixMatching(t *testing.T) {
	m := NewMockRunner()
	m.AddResponse("npm config get", "https://registry.npmjs.org/\n", nil)
	m.AddResponse("npm config get legacy-peer-deps", "false\n", nil)

	res, err := m.Run(context.Background(), "npm config get legacy-peer-deps", RunOptions{})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Stdout != "false\n" {
		t.Errorf("Stdout = %q, longest prefix should win", res.Stdout)
	}

	if len(m.Commands()) != 1 {
		t.Errorf("recorded %d calls, want 1", len(m.Commands()))
	}
}

func TestMockRunner_Hook(t *testing.T) {
	m := NewMockRunner()
	sawDir := ""
	m.Hook = func(call MockCall) error {
		sawDir = call.Dir
		return nil
	}

	if _, err := m.Run(context.Background(), "tool create before", RunOptions{Dir: "/tmp/work"}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if sawDir != "/tmp/work" {
		t.Errorf("hook saw dir %q, want /tmp/work", sawDir)
	}
}
