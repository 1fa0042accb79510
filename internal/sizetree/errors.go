package sizetree

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorKind classifies a scan failure.
type ErrorKind int

// Scan error kinds. Every lower-level failure maps to exactly one of these.
const (
	// PathDoesNotExist means the root path is missing.
	PathDoesNotExist ErrorKind = iota + 1
	// UnsupportedFileType means the root path is neither a file nor a directory.
	UnsupportedFileType
	// PermissionDenied means an I/O operation was denied access.
	PermissionDenied
	// OtherIOError is any other I/O failure.
	OtherIOError
)

// String returns a short human-readable description of the kind.
func (k ErrorKind) String() string {
	switch k {
	case PathDoesNotExist:
		return "path does not exist"
	case UnsupportedFileType:
		return "unsupported file type"
	case PermissionDenied:
		return "permission denied"
	case OtherIOError:
		return "i/o error"
	default:
		return "unknown error"
	}
}

// Sentinel errors for use with errors.Is.
var (
	ErrPathDoesNotExist    = &ScanError{Kind: PathDoesNotExist}
	ErrUnsupportedFileType = &ScanError{Kind: UnsupportedFileType}
	ErrPermissionDenied    = &ScanError{Kind: PermissionDenied}
	ErrOtherIO             = &ScanError{Kind: OtherIOError}
)

// ScanError is returned by Build when the root path cannot be scanned.
type ScanError struct {
	// Kind classifies the failure.
	Kind ErrorKind
	// Path is the path the failure happened on.
	Path string
	// Err is the underlying error, if any.
	Err error
}

// Error returns the error message.
func (e *ScanError) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Path)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

// Unwrap returns the wrapped error.
func (e *ScanError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a ScanError of the same kind.
func (e *ScanError) Is(target error) bool {
	var t *ScanError
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind
}

// KindOf returns the kind of the first ScanError in err's chain,
// or zero when there is none.
func KindOf(err error) ErrorKind {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Kind
	}

	return 0
}

// classify maps an I/O error onto one of the scan error kinds.
func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return PathDoesNotExist
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	default:
		return OtherIOError
	}
}

// wrap converts an I/O error on path into a ScanError.
func wrap(path string, err error) error {
	return &ScanError{Kind: classify(err), Path: path, Err: err}
}
