// Package render draws text onto a terminal through a cell grid.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
)

// Color is a terminal color.
type Color int

// ColorDefault is the terminal's default color. No other colors are drawn yet.
const ColorDefault Color = 0

// Cell is one character position of the terminal.
type Cell struct {
	// Glyph is the rune shown in the cell.
	Glyph rune
	// Fg is the foreground color.
	Fg Color
	// Bg is the background color.
	Bg Color
	// Continuation marks the right half of a double-width glyph.
	// It is never printed on its own.
	Continuation bool
}

// blank is an empty cell with default colors.
var blank = Cell{Glyph: ' ', Fg: ColorDefault, Bg: ColorDefault}

// Terminal is the device a Buffer draws on.
type Terminal interface {
	io.Writer
	// Size returns the current number of columns and rows.
	Size() (width, height int, err error)
	// MakeRaw switches input to raw mode.
	MakeRaw() error
	// Restore undoes MakeRaw.
	Restore() error
}

// Buffer is a grid of cells mirroring the terminal.
// Drawing happens on the grid and reaches the terminal on Flush.
//
// A Buffer owns the terminal's full-screen mode from Open until Close.
type Buffer struct {
	term   Terminal
	cells  [][]Cell
	width  int
	height int
	out    bytes.Buffer
	closed bool
}

// Open puts term in raw mode, switches to the alternate screen, hides the
// cursor and allocates a blank grid of the terminal's size.
// The caller must Close the returned Buffer.
func Open(term Terminal) (*Buffer, error) {
	if err := term.MakeRaw(); err != nil {
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}

	buf := &Buffer{term: term}

	if _, err := io.WriteString(term, ansi.SetAltScreenSaveCursorMode+ansi.HideCursor+ansi.EraseEntireScreen); err != nil {
		return nil, errors.Join(fmt.Errorf("entering alternate screen: %w", err), buf.Close())
	}

	width, height, err := term.Size()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("reading terminal size: %w", err), buf.Close())
	}

	buf.Resize(width, height)

	return buf, nil
}

// Size returns the grid dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// Cell returns the cell at column x of row y.
func (b *Buffer) Cell(x, y int) Cell {
	return b.cells[y][x]
}

// Resize reallocates the grid. Previous contents are discarded.
func (b *Buffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)

	cells := make([][]Cell, height)
	for y := range cells {
		row := make([]Cell, width)
		for x := range row {
			row[x] = blank
		}

		cells[y] = row
	}

	b.cells = cells
	b.width = width
	b.height = height
}

// Clear resets every cell to blank without reallocating.
func (b *Buffer) Clear() {
	for _, row := range b.cells {
		for x := range row {
			row[x] = blank
		}
	}
}

// WriteLine writes text into row y starting at column x.
//
// The row must exist and the text must fit: writing outside the grid is a
// layout bug in the caller and panics.
func (b *Buffer) WriteLine(text string, x, y int) {
	if y < 0 || y >= b.height {
		panic(fmt.Sprintf("render: row %d outside buffer of height %d", y, b.height))
	}

	if width := TextWidth(text); x < 0 || x+width > b.width {
		panic(fmt.Sprintf("render: columns [%d, %d) outside buffer of width %d", x, x+width, b.width))
	}

	row := b.cells[y]

	for _, r := range text {
		switch RuneWidth(r) {
		case 0:
		case 1:
			b.set(row, x, Cell{Glyph: r, Fg: ColorDefault, Bg: ColorDefault})
			x++
		default:
			b.set(row, x, Cell{Glyph: r, Fg: ColorDefault, Bg: ColorDefault})
			b.set(row, x+1, Cell{Glyph: ' ', Fg: ColorDefault, Bg: ColorDefault, Continuation: true})
			x += 2
		}
	}
}

// set stores c at row[x], blanking the other half of any wide glyph it splits.
func (b *Buffer) set(row []Cell, x int, c Cell) {
	if row[x].Continuation && !c.Continuation && x > 0 {
		row[x-1] = blank
	}

	if x+1 < len(row) && row[x+1].Continuation {
		row[x+1] = blank
	}

	row[x] = c
}

// Flush redraws the whole grid: for every row, one cursor move followed by
// the row's glyphs. All rows reach the terminal in a single write.
func (b *Buffer) Flush() error {
	b.out.Reset()

	for y, row := range b.cells {
		b.out.WriteString(ansi.CursorPosition(1, y+1))

		for _, c := range row {
			if c.Continuation {
				continue
			}

			b.out.WriteRune(c.Glyph)
		}
	}

	if _, err := b.term.Write(b.out.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}

	return nil
}

// Close shows the cursor, leaves the alternate screen and restores the
// terminal mode. Raw mode is restored even if writing fails.
// Calling Close more than once is a no-op.
func (b *Buffer) Close() error {
	if b.closed {
		return nil
	}

	b.closed = true

	var errs []error

	if _, err := io.WriteString(b.term, ansi.ShowCursor+ansi.ResetAltScreenSaveCursorMode); err != nil {
		errs = append(errs, fmt.Errorf("leaving alternate screen: %w", err))
	}

	if err := b.term.Restore(); err != nil {
		errs = append(errs, fmt.Errorf("restoring terminal mode: %w", err))
	}

	return errors.Join(errs...)
}
