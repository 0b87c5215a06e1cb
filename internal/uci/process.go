// Package uci drives an external chess engine over the Universal Chess
// Interface. The engine only proposes moves; every proposal is validated by
// the rules engine before it reaches the board.
package uci

import (
	"context"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/lgbarn/chessplay-go/internal/errors"
)

// closeTimeout bounds how long Close waits for the engine to exit after quit.
const closeTimeout = 3 * time.Second

// Process manages a UCI engine process.
type Process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser

	mu     sync.Mutex
	closed bool
}

// Start launches an external UCI engine process.
func Start(ctx context.Context, path string, args ...string) (*Process, error) {
	if path == "" {
		return nil, errors.Wrap(errors.ErrProtocol, "engine path is required")
	}
	cmd := exec.CommandContext(ctx, path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "starting engine %s", path)
	}
	return &Process{cmd: cmd, stdin: stdin, stdout: stdout, stderr: stderr}, nil
}

// Stdout returns the engine's output stream.
func (p *Process) Stdout() io.Reader {
	return p.stdout
}

// Stderr returns the stderr stream for the engine process.
func (p *Process) Stderr() io.Reader {
	return p.stderr
}

// Write sends raw bytes to the engine's standard input.
func (p *Process) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, errors.ErrClosed
	}
	return p.stdin.Write(b)
}

// Close waits for the engine to exit, killing it if it does not exit in
// time. The caller is expected to have sent quit already.
func (p *Process) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	_ = p.stdin.Close()
	p.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- p.cmd.Wait() }()
	select {
	case err := <-done:
		return err
	case <-time.After(closeTimeout):
		_ = p.cmd.Process.Kill()
		return errors.Wrap(errors.ErrClosed, "engine did not exit in time")
	}
}
