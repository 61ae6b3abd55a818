package rollarr

import (
	"io"
	"os"
	"os/signal"
)

//go:generate mockgen -destination=mocks/rollarr.go -package=mocks golift.io/rollarr Roller

// Roller is the full control surface of a rolling logger. *Logger satisfies
// it. Accept this interface instead of *Logger when your app wants to swap
// in a mock, or another writer entirely.
type Roller interface {
	// Write appends one formatted log line. Satisfies io.Writer, so a
	// Roller plugs into log.SetOutput() and friends.
	// Close flushes and closes the live file. The Roller is done after this.
	io.WriteCloser
	// Rotate forces a roll right now, regardless of policy.
	Rotate() (int64, error)
	// Reload reopens the live file without rolling it. For external
	// log-management tools that rename the file out-of-band.
	Reload() error
	// Flush forces the live file to stable storage.
	Flush() error
}

// ReloadOn connects OS signals to a Roller: every time one of the provided
// signals arrives, Reload is invoked. This is the usual way to cooperate
// with logrotate (send SIGHUP after renaming). The returned stop procedure
// unregisters the signals and ends the watcher go routine.
func ReloadOn(roller Roller, signals ...os.Signal) (stop func()) {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, signals...)

	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-sigc:
				// Reload failures already go to the diagnostic sink.
				_ = roller.Reload()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigc)
		close(done)
	}
}
