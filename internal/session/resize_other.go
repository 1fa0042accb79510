//go:build !unix

package session

import "os"

// notifyResize is a no-op where SIGWINCH does not exist.
// TODO(windows): poll the console size between key presses.
func notifyResize(chan<- os.Signal) {}
