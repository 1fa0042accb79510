package sizetree

import "fmt"

// Decimal size units.
const (
	KB uint64 = 1000
	MB        = KB * 1000
	GB        = MB * 1000
)

// FormatSize converts a byte count to a short human-readable string,
// e.g. "999 B", "1.00 KB", "1.50 GB".
func FormatSize(size uint64) string {
	switch {
	case size < KB:
		return fmt.Sprintf("%d B", size)
	case size < MB:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(KB))
	case size < GB:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(MB))
	default:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(GB))
	}
}
