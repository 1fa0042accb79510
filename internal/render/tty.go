package render

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// TTY is a Terminal backed by the process's terminal files.
type TTY struct {
	in    *os.File
	out   *os.File
	state *term.State
}

// NewTTY returns a terminal reading from in and drawing on out.
func NewTTY(in, out *os.File) *TTY {
	return &TTY{in: in, out: out}
}

// Write writes p to the output file.
func (t *TTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Size returns the output terminal's dimensions.
func (t *TTY) Size() (width, height int, err error) {
	return term.GetSize(int(t.out.Fd())) //nolint:gosec // File descriptors fit in int
}

// MakeRaw puts the input terminal into raw mode.
func (t *TTY) MakeRaw() error {
	if t.state != nil {
		return errors.New("terminal already in raw mode")
	}

	state, err := term.MakeRaw(int(t.in.Fd())) //nolint:gosec // File descriptors fit in int
	if err != nil {
		return err
	}

	t.state = state

	return nil
}

// Restore returns the input terminal to the mode saved by MakeRaw.
func (t *TTY) Restore() error {
	if t.state == nil {
		return nil
	}

	state := t.state
	t.state = nil

	return term.Restore(int(t.in.Fd()), state) //nolint:gosec // File descriptors fit in int
}
