// Package session runs the interactive tree browser on a terminal.
package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/SaumitraLohokare/sizetree/internal/render"
	"github.com/SaumitraLohokare/sizetree/internal/sizetree"
	"github.com/SaumitraLohokare/sizetree/internal/view"
)

const (
	// treeTop is the first row of the tree; row 0 is the header.
	treeTop = 2
	// cursorMark is drawn in the left margin of the selected line.
	cursorMark = ">"
	// help is shown on the footer row.
	help = "q quit  j/k move  enter toggle  h/l collapse/expand"
)

// Options configures a session.
type Options struct {
	// Input supplies key presses, normally the terminal in raw mode.
	Input io.Reader
	// Logger receives resize and teardown diagnostics. Nil disables logging.
	Logger *zap.Logger
	// Resize delivers terminal size change notifications.
	// Nil subscribes to SIGWINCH where the platform has it.
	Resize <-chan os.Signal
}

// session is the state of one running browser.
type session struct {
	tree   *sizetree.Tree
	term   render.Terminal
	buf    *render.Buffer
	log    *zap.Logger
	lines  []view.Line
	cursor int
	offset int
}

// Run shows tree on term until the user quits, input ends or ctx is done.
//
// The terminal is restored on every exit path. A teardown failure is logged
// and only returned when the session itself ended without error.
func Run(ctx context.Context, tree *sizetree.Tree, term render.Terminal, opts Options) (err error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	resize := opts.Resize
	if resize == nil {
		c := make(chan os.Signal, 1)
		notifyResize(c)
		defer signal.Stop(c)

		resize = c
	}

	buf, err := render.Open(term)
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}

	defer func() {
		if closeErr := buf.Close(); closeErr != nil {
			log.Error("restoring terminal failed", zap.Error(closeErr))

			if err == nil {
				err = fmt.Errorf("restoring terminal: %w", closeErr)
			}
		}
	}()

	s := &session{tree: tree, term: term, buf: buf, log: log}

	return s.loop(ctx, opts.Input, resize)
}

// loop runs frames until a quit condition.
func (s *session) loop(ctx context.Context, input io.Reader, resize <-chan os.Signal) error {
	done := make(chan struct{})
	defer close(done)

	// Without input, keys stays nil and only ctx or resize wake the loop.
	var keys chan Key

	if input != nil {
		keys = make(chan Key)

		go readKeys(input, keys, done)
	}

	for {
		if err := s.draw(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			s.log.Debug("session cancelled", zap.Error(ctx.Err()))

			return nil
		case <-resize:
			s.resize()
		case key, ok := <-keys:
			if !ok || s.handle(key) {
				return nil
			}
		}
	}
}

// resize matches the buffer to the terminal's new size.
func (s *session) resize() {
	width, height, err := s.term.Size()
	if err != nil {
		s.log.Warn("reading terminal size failed", zap.Error(err))

		return
	}

	s.buf.Resize(width, height)
	s.log.Debug("terminal resized", zap.Int("width", width), zap.Int("height", height))
}

// handle applies key and reports whether the session should end.
func (s *session) handle(key Key) bool {
	if len(s.lines) == 0 {
		return key == KeyQuit
	}

	node := s.lines[s.cursor].Node

	switch key {
	case KeyQuit:
		return true
	case KeyUp:
		s.cursor--
	case KeyDown:
		s.cursor++
	case KeyTop:
		s.cursor = 0
	case KeyBottom:
		s.cursor = len(s.lines) - 1
	case KeyToggle:
		if node.IsDir() {
			node.Toggle()
		}
	case KeyExpand:
		if node.IsDir() {
			node.Expanded = true
		}
	case KeyCollapse:
		if node.IsDir() && node.Expanded {
			node.Expanded = false
		} else {
			s.cursor = s.parent(s.cursor)
		}
	case KeyUnknown:
	}

	return false
}

// parent returns the index of the line holding the parent of line i.
func (s *session) parent(i int) int {
	depth := s.lines[i].Depth
	for j := i - 1; j >= 0; j-- {
		if s.lines[j].Depth < depth {
			return j
		}
	}

	return i
}

// draw renders one frame: header, visible tree lines, footer.
func (s *session) draw() error {
	s.buf.Clear()

	width, height := s.buf.Size()
	lineWidth := view.LineWidth(width)

	s.lines = view.Flatten(s.tree.Root, width, 0)
	s.cursor = min(max(s.cursor, 0), len(s.lines)-1)

	if lineWidth > 0 && height > 0 {
		s.buf.WriteLine(view.Layout("sizetree  "+s.tree.Path, s.total(), lineWidth, 0), view.Margin, 0)

		rows := max(height-treeTop-1, 0)
		s.scroll(rows)

		for i := 0; i < rows && s.offset+i < len(s.lines); i++ {
			y := treeTop + i
			s.buf.WriteLine(s.lines[s.offset+i].Text, view.Margin, y)

			if s.offset+i == s.cursor {
				s.buf.WriteLine(cursorMark, 0, y)
			}
		}

		if height > treeTop {
			s.buf.WriteLine(view.Layout(help, s.summary(), lineWidth, 0), view.Margin, height-1)
		}
	}

	return s.buf.Flush()
}

// scroll keeps the cursor within the rows visible from offset.
func (s *session) scroll(rows int) {
	if rows <= 0 {
		s.offset = 0

		return
	}

	if s.cursor < s.offset {
		s.offset = s.cursor
	}

	if s.cursor >= s.offset+rows {
		s.offset = s.cursor - rows + 1
	}

	s.offset = max(min(s.offset, len(s.lines)-rows), 0)
}

// total describes the root size for the header.
func (s *session) total() string {
	n, ok := s.tree.Root.Size.Bytes()
	if !ok {
		return "?"
	}

	return fmt.Sprintf("%s (%s bytes)", sizetree.FormatSize(n), humanize.Comma(int64(n))) //nolint:gosec // Sizes fit in int64
}

// summary describes the scan statistics for the footer.
func (s *session) summary() string {
	stats := s.tree.Stats

	text := fmt.Sprintf("%s files  %s dirs", humanize.Comma(stats.Files), humanize.Comma(stats.Dirs))
	if stats.Unreadable > 0 {
		text += fmt.Sprintf("  %s unreadable", humanize.Comma(stats.Unreadable))
	}

	return text
}
