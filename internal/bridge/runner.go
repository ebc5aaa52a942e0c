package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultHelper is the OAuth-proxy helper binary looked up on PATH.
	DefaultHelper = "pdauth"

	// DefaultTimeout bounds a single helper invocation.
	DefaultTimeout = 30 * time.Second

	// maxOutputBytes caps captured helper stdout so a misbehaving helper
	// cannot grow memory without bound.
	maxOutputBytes = 1 << 20
)

// Runner executes the external helper and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ProcessError reports a failed helper invocation: non-zero exit, timeout, or
// output exceeding the capture limit.
type ProcessError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("helper invocation failed (%s %s): %v",
		DefaultHelper, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// execRunner runs the helper binary with a per-invocation timeout and a
// bounded stdout capture.
type execRunner struct {
	binary  string
	timeout time.Duration
	log     zerolog.Logger
}

// NewRunner creates a Runner for the given helper binary. An empty binary
// name falls back to DefaultHelper; a zero timeout to DefaultTimeout.
func NewRunner(binary string, timeout time.Duration, log zerolog.Logger) Runner {
	if binary == "" {
		binary = DefaultHelper
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &execRunner{binary: binary, timeout: timeout, log: log}
}

func (r *execRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.log.Debug().Str("helper", r.binary).Strs("args", args).Msg("invoking helper")
	start := time.Now()

	cmd := exec.CommandContext(ctx, r.binary, args...)

	stdout := &boundedBuffer{limit: maxOutputBytes}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	r.log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("stdout_bytes", stdout.buf.Len()).
		Err(err).
		Msg("helper finished")

	if stdout.overflowed {
		return nil, &ProcessError{Args: args, Err: errors.New("helper output exceeded capture limit")}
	}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out after %s", r.timeout)
		}
		return nil, &ProcessError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return stdout.buf.Bytes(), nil
}

// boundedBuffer accepts writes up to limit bytes, then flags overflow while
// discarding the excess so the subprocess is not blocked on a full pipe.
type boundedBuffer struct {
	buf        bytes.Buffer
	limit      int
	overflowed bool
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - b.buf.Len()
	if remaining <= 0 {
		b.overflowed = true
		return len(p), nil
	}
	if len(p) > remaining {
		b.overflowed = true
		b.buf.Write(p[:remaining])
		return len(p), nil
	}
	return b.buf.Write(p)
}
