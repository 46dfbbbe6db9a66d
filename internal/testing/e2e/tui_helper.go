package e2e

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/creack/pty"
)

// Control bytes understood by the editor's keyboard reader
const (
	KeyCtrlC  = "\x03"
	KeyCtrlS  = "\x13"
	KeyEscape = "\x1b"
	KeyTab    = "\t"
	KeyRight  = "\x1b[C"
	KeyLeft   = "\x1b[D"
)

// TUITestConfig contains configuration for TUI testing
type TUITestConfig struct {
	// Command and arguments to run
	Command string
	Args    []string

	// Extra environment variables
	Env []string

	// Terminal size
	Rows uint16
	Cols uint16

	// Timeout for the entire test
	Timeout time.Duration
}

// TUITestSession runs a command on a pseudo terminal and records what it
// draws
type TUITestSession struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	rows   int
	cols   int
	cancel context.CancelFunc

	outputLock sync.RWMutex
	output     bytes.Buffer

	done    chan struct{}
	waitErr error
}

// NewTUITestSession starts the command on a new PTY
func NewTUITestSession(config *TUITestConfig) (*TUITestSession, error) {
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
	cmd.Env = append(os.Environ(), config.Env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: config.Rows,
		Cols: config.Cols,
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start PTY: %w", err)
	}

	s := &TUITestSession{
		cmd:    cmd,
		ptmx:   ptmx,
		rows:   int(config.Rows),
		cols:   int(config.Cols),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.captureOutput()
	go func() {
		s.waitErr = cmd.Wait()
		close(s.done)
	}()
	return s, nil
}

func (s *TUITestSession) captureOutput() {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.outputLock.Lock()
			s.output.Write(buf[:n])
			s.outputLock.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Send writes raw input to the terminal
func (s *TUITestSession) Send(input string) error {
	if !s.IsRunning() {
		return errors.New("session not running")
	}
	_, err := io.WriteString(s.ptmx, input)
	return err
}

// GetOutput returns everything written so far
func (s *TUITestSession) GetOutput() string {
	s.outputLock.RLock()
	defer s.outputLock.RUnlock()
	return s.output.String()
}

// Screen replays the output onto a virtual screen of the session's size
func (s *TUITestSession) Screen() *TerminalScreen {
	return ParseTerminalOutput(s.GetOutput(), s.rows, s.cols)
}

// WaitForScreen waits until the screen shows text
func (s *TUITestSession) WaitForScreen(text string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if s.Screen().ContainsText(text) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for %q, screen:\n%s", text, s.Screen().Render())
}

// IsRunning reports whether the process has not exited yet
func (s *TUITestSession) IsRunning() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// WaitExit waits for the process to exit on its own
func (s *TUITestSession) WaitExit(timeout time.Duration) error {
	select {
	case <-s.done:
		return s.waitErr
	case <-time.After(timeout):
		return fmt.Errorf("process still running after %s", timeout)
	}
}

// Stop kills the process if needed and releases the terminal
func (s *TUITestSession) Stop() {
	s.cancel()
	<-s.done
	_ = s.ptmx.Close()
}

// BuildBinary compiles the package in pkgDir into outDir
func BuildBinary(pkgDir, outDir string) (string, error) {
	binary := filepath.Join(outDir, "go-timeline-editor")
	build := exec.Command("go", "build", "-o", binary, ".")
	build.Dir = pkgDir
	if out, err := build.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go build failed: %w\n%s", err, out)
	}
	return binary, nil
}
