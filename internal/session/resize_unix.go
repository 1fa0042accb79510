//go:build unix

package session

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// notifyResize relays terminal size changes to c.
func notifyResize(c chan<- os.Signal) {
	signal.Notify(c, unix.SIGWINCH)
}
