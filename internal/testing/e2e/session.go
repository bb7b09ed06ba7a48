package e2e

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

// Key sequences as a terminal sends them.
const (
	KeyEsc   = "\x1b"
	KeyLeft  = "\x1b[D"
	KeyRight = "\x1b[C"
	KeyUp    = "\x1b[A"
	KeyDown  = "\x1b[B"
)

// Config describes a program to run under a pseudo terminal.
type Config struct {
	Command string
	Args    []string
	WorkDir string
	Env     []string

	Rows uint16
	Cols uint16

	// Timeout bounds the whole session; the process is killed after it.
	Timeout time.Duration
}

// Session is a running program attached to a pseudo terminal. Everything
// it writes is captured for inspection.
type Session struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	cancel context.CancelFunc
	rows   int
	cols   int

	mu     sync.RWMutex
	output bytes.Buffer

	done    chan struct{}
	waitErr error
}

// Start runs the configured command under a new pseudo terminal.
func Start(config Config) (*Session, error) {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Rows == 0 {
		config.Rows = 24
	}
	if config.Cols == 0 {
		config.Cols = 80
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	cmd := exec.CommandContext(ctx, config.Command, config.Args...)
	cmd.Dir = config.WorkDir
	cmd.Env = append(os.Environ(), config.Env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: config.Rows, Cols: config.Cols})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start PTY: %w", err)
	}

	s := &Session{
		cmd:    cmd,
		ptmx:   ptmx,
		cancel: cancel,
		rows:   int(config.Rows),
		cols:   int(config.Cols),
		done:   make(chan struct{}),
	}
	go s.capture()
	go func() {
		s.waitErr = cmd.Wait()
		close(s.done)
	}()
	return s, nil
}

func (s *Session) capture() {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.output.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Send writes keys to the program's terminal.
func (s *Session) Send(keys string) error {
	_, err := s.ptmx.Write([]byte(keys))
	return err
}

// Output returns everything written so far, escape sequences included.
func (s *Session) Output() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.output.String()
}

// Screen replays the captured output on a virtual terminal of the
// session's size.
func (s *Session) Screen() *Screen {
	return ParseScreen(s.Output(), s.rows, s.cols)
}

// WaitForText polls the rendered screen until text appears.
func (s *Session) WaitForText(text string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if s.Screen().Contains(text) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for %q; screen:\n%s", text, s.Screen())
}

// WaitForOutput polls the raw output until it contains seq.
func (s *Session) WaitForOutput(seq string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.Output(), seq) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for output %q", seq)
}

// WaitExit waits for the program to exit on its own.
func (s *Session) WaitExit(timeout time.Duration) error {
	select {
	case <-s.done:
		return s.waitErr
	case <-time.After(timeout):
		return fmt.Errorf("process still running after %s", timeout)
	}
}

// Close kills the program if it is still running and releases the terminal.
func (s *Session) Close() {
	select {
	case <-s.done:
	default:
		if s.cmd.Process != nil {
			s.cmd.Process.Kill()
		}
		<-s.done
	}
	s.cancel()
	s.ptmx.Close()
}
