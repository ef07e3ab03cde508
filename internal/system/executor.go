package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// stderrTailLimit bounds how much captured stderr is carried in a
// ProcessError. Package managers can emit megabytes on failure.
const stderrTailLimit = 4096

// osRunner implements Runner using real OS processes.
type osRunner struct{}

func (r *osRunner) Run(ctx context.Context, command string, opts RunOptions) (Result, error) {
	words, err := shellquote.Split(command)
	if err != nil || len(words) == 0 {
		return Result{}, &ProcessError{
			Command: command,
			Reason:  ReasonStartFailed,
			Cause:   fmt.Errorf("invalid command line: %w", err),
		}
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, words[0], words[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = mergeEnv(os.Environ(), opts.Env)

	var stdout, stderr bytes.Buffer
	if opts.InheritOutput {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	runErr := cmd.Run()
	if runErr == nil {
		return Result{Stdout: stdout.String()}, nil
	}

	perr := &ProcessError{
		Command:    command,
		StderrTail: tail(stderr.String(), stderrTailLimit),
		Cause:      runErr,
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		perr.Reason = ReasonTimeout
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			perr.Reason = ReasonNonZeroExit
			perr.ExitCode = exitErr.ExitCode()
		} else {
			perr.Reason = ReasonStartFailed
		}
	}

	return Result{}, perr
}

// mergeEnv merges overrides over the ambient environment. Overridden keys
// replace ambient entries instead of duplicating them.
func mergeEnv(ambient []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return ambient
	}

	merged := make([]string, 0, len(ambient)+len(overrides))
	for _, kv := range ambient {
		key := kv
		if i := strings.IndexByte(kv, '='); i >= 0 {
			key = kv[:i]
		}
		if _, ok := overrides[key]; ok {
			continue
		}
		merged = append(merged, kv)
	}
	for key, value := range overrides {
		merged = append(merged, key+"="+value)
	}
	return merged
}

// tail returns the last max bytes of s, trimmed of trailing whitespace.
func tail(s string, max int) string {
	s = strings.TrimRight(s, "\n\t ")
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}
