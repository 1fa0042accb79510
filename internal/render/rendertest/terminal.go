// Package rendertest provides an in-memory terminal for tests.
package rendertest

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Terminal records output and emulates cursor positioning.
// Set the error fields to make the corresponding calls fail.
type Terminal struct {
	Width  int
	Height int

	Raw          bool
	RestoreCalls int

	WriteErr   error
	SizeErr    error
	RawErr     error
	RestoreErr error

	out bytes.Buffer
}

// New returns a terminal of the given size.
func New(width, height int) *Terminal {
	return &Terminal{Width: width, Height: height}
}

// Write records p unless WriteErr is set.
func (t *Terminal) Write(p []byte) (int, error) {
	if t.WriteErr != nil {
		return 0, t.WriteErr
	}

	return t.out.Write(p)
}

// String returns everything written so far.
func (t *Terminal) String() string {
	return t.out.String()
}

// Reset discards everything written so far.
func (t *Terminal) Reset() {
	t.out.Reset()
}

// Size returns Width and Height.
func (t *Terminal) Size() (int, int, error) {
	return t.Width, t.Height, t.SizeErr
}

// MakeRaw marks the terminal raw.
func (t *Terminal) MakeRaw() error {
	if t.RawErr != nil {
		return t.RawErr
	}

	t.Raw = true

	return nil
}

// Restore marks the terminal cooked.
func (t *Terminal) Restore() error {
	t.RestoreCalls++
	t.Raw = false

	return t.RestoreErr
}

// Screen replays everything written so far onto a Width×Height grid and
// returns its rows. Cursor positioning is honored, other escape sequences
// are ignored, and text past the right edge is dropped.
func (t *Terminal) Screen() []string {
	grid := make([][]string, t.Height)
	for y := range grid {
		grid[y] = make([]string, t.Width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	data := t.String()
	x, y := 0, 0

	for i := 0; i < len(data); {
		if data[i] == 0x1b {
			n, final, params := parseEscape(data[i:])
			if final == 'H' {
				y, x = position(params)
			}

			i += n

			continue
		}

		r, size := utf8.DecodeRuneInString(data[i:])
		i += size

		w := runewidth.RuneWidth(r)
		if y >= 0 && y < t.Height && x >= 0 && x+w <= t.Width && w > 0 {
			grid[y][x] = string(r)
			for k := 1; k < w; k++ {
				grid[y][x+k] = ""
			}
		}

		x += w
	}

	rows := make([]string, t.Height)
	for y, row := range grid {
		rows[y] = strings.Join(row, "")
	}

	return rows
}

// parseEscape returns the length, final byte and parameters of the escape
// sequence at the start of s.
func parseEscape(s string) (int, byte, string) {
	if len(s) < 2 {
		return len(s), 0, ""
	}

	if s[1] != '[' {
		return 2, s[1], ""
	}

	for i := 2; i < len(s); i++ {
		if s[i] >= 0x40 && s[i] <= 0x7e {
			return i + 1, s[i], s[2:i]
		}
	}

	return len(s), 0, ""
}

// position converts "row;col" parameters to zero-based coordinates.
func position(params string) (int, int) {
	row, col := 1, 1

	parts := strings.Split(params, ";")
	if n, err := strconv.Atoi(parts[0]); err == nil && n > 0 {
		row = n
	}

	if len(parts) > 1 {
		if n, err := strconv.Atoi(parts[1]); err == nil && n > 0 {
			col = n
		}
	}

	return row - 1, col - 1
}
