package session

import "io"

// Key is a decoded key press.
type Key int

// Keys understood by the session.
const (
	KeyUnknown Key = iota
	KeyQuit
	KeyUp
	KeyDown
	KeyToggle
	KeyExpand
	KeyCollapse
	KeyTop
	KeyBottom
)

const (
	esc   = 0x1b
	ctrlC = 0x03
)

// Decode turns one read of raw terminal input into key presses.
// A lone escape byte is the escape key; escape sequences for arrows,
// Home and End are recognized and all other sequences are ignored.
func Decode(p []byte) []Key {
	var keys []Key

	for i := 0; i < len(p); i++ {
		switch c := p[i]; c {
		case 'q', ctrlC:
			keys = append(keys, KeyQuit)
		case 'k':
			keys = append(keys, KeyUp)
		case 'j':
			keys = append(keys, KeyDown)
		case '\r', '\n', ' ':
			keys = append(keys, KeyToggle)
		case 'l':
			keys = append(keys, KeyExpand)
		case 'h':
			keys = append(keys, KeyCollapse)
		case 'g':
			keys = append(keys, KeyTop)
		case 'G':
			keys = append(keys, KeyBottom)
		case esc:
			if i+1 == len(p) {
				keys = append(keys, KeyQuit)

				continue
			}

			key, n := decodeEscape(p[i:])
			if key != KeyUnknown {
				keys = append(keys, key)
			}

			i += n - 1
		}
	}

	return keys
}

// decodeEscape decodes the escape sequence at the start of p and returns
// the key and the number of bytes consumed.
func decodeEscape(p []byte) (Key, int) {
	if p[1] != '[' && p[1] != 'O' {
		// Alt+key: drop both bytes.
		return KeyUnknown, 2
	}

	// Skip parameters up to the final byte.
	end := 2
	for end < len(p) && (p[end] < 0x40 || p[end] > 0x7e) {
		end++
	}

	if end == len(p) {
		return KeyUnknown, len(p)
	}

	switch p[end] {
	case 'A':
		return KeyUp, end + 1
	case 'B':
		return KeyDown, end + 1
	case 'C':
		return KeyExpand, end + 1
	case 'D':
		return KeyCollapse, end + 1
	case 'H':
		return KeyTop, end + 1
	case 'F':
		return KeyBottom, end + 1
	default:
		return KeyUnknown, end + 1
	}
}

// readKeys decodes input onto keys until input fails or done is closed.
// keys is closed on return.
func readKeys(input io.Reader, keys chan<- Key, done <-chan struct{}) {
	defer close(keys)

	p := make([]byte, 256)

	for {
		n, err := input.Read(p)

		for _, key := range Decode(p[:n]) {
			select {
			case keys <- key:
			case <-done:
				return
			}
		}

		if err != nil {
			return
		}
	}
}
