package render

import "github.com/mattn/go-runewidth"

// RuneWidth returns the number of cells r occupies in a Buffer.
// Zero-width runes are dropped by WriteLine.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// TextWidth returns the number of cells text occupies when written with WriteLine.
func TextWidth(text string) int {
	width := 0
	for _, r := range text {
		width += RuneWidth(r)
	}

	return width
}
