package rollarr

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"golift.io/rollarr/filer"
	"golift.io/rollarr/period"
)

// These are the default directory and log file POSIX modes.
const (
	FileMode os.FileMode = 0o600
	DirMode  os.FileMode = 0o750
)

// DefaultMaxSize is used when the Policy Config struct member is omitted,
// or names MaxSize without a byte limit.
const DefaultMaxSize = 10 * 1024 * 1024

// openRetryInterval is how long to wait before retrying openLog after a failure.
// Prevents a storm of syscalls when the log file has permission or other persistent errors.
const openRetryInterval = 10 * time.Second

// ErrWriteTooLarge is returned when a single message exceeds the size limit.
var ErrWriteTooLarge = errors.New("log msg length exceeds max file size")

// Config is the data needed to create a new rolling Logger.
type Config struct {
	Filepath string         // Full path to log file. Set this, the default is lousy.
	Policy   period.Policy  // When to roll the file. Default: MaxSize at DefaultMaxSize.
	Location *time.Location // Calendar zone for roll boundaries and name stamps. Default: time.Local.
	Truncate bool           // Truncate an existing file on the first open instead of appending.
	Keep     int            // Maximum number of rotated files kept. 0 keeps them all.
	FileMode os.FileMode    // POSIX mode for new files.
	DirMode  os.FileMode    // POSIX mode for new folders.
	// Diag receives best-effort failure reports: errors that rotation and
	// reload swallow rather than raise. Default writes to standard error.
	Diag func(msg string, v ...any)
	// Overridable file system procedures. Default: filer.Default().
	Filer filer.Filer
}

// Logger is what you get in return for providing a Config. Use this to set log output.
// You must obtain a Logger by calling one of the New() procedures.
type Logger struct {
	config      *Config       // incoming configurtation.
	log         chan []byte   // incoming log messages passed across go routines.
	resp        chan *resp    // response sent back across go routines.
	signal      chan op       // used for Rotate, Reload, Flush and Close ops.
	size        int64         // bytes in the active open file.
	created     time.Time     // the date the active open file was created.
	next        time.Time     // when the next time-based roll is due.
	opened      bool          // set once the first open succeeds; gates Config.Truncate.
	File        *os.File      // The active open file. Useful for direct writing.
	filer.Filer               // overridable file system procedures.
	lastOpenErr error         // last error from openLog; used to avoid retry storm.
	lastOpened  time.Time     // when openLog was last attempted (for backoff).
	closeOnce   sync.Once     // Close may be called more than once.
}

// resp is used to send responses back across our go routines.
type resp struct {
	size int64
	err  error
}

// op names the maintenance operations carried over the signal channel.
type op uint8

const (
	opRotate op = iota
	opReload
	opFlush
)

// New takes in your configuration and returns a Logger you can use with
// log.SetOutput(). The provided logger rolls the file per the configured
// period.Policy and prunes old rotated files past Config.Keep.
func New(config *Config) (*Logger, error) {
	logger := &Logger{config: config, Filer: config.Filer}

	err := logger.initialize(false)
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// NewMust takes in your configuration and returns a Logger you can use with
// log.SetOutput(). If an error occurs opening the log file or making log
// directories it is ignored (and retried later).
func NewMust(config *Config) *Logger {
	logger := &Logger{config: config, Filer: config.Filer}
	_ = logger.initialize(true)

	return logger
}

// initialize runs all the startup routines.
func (l *Logger) initialize(ignoreErrors bool) error {
	var err error

	defer func() {
		if err == nil || ignoreErrors {
			l.log = make(chan []byte)
			l.resp = make(chan *resp)
			l.signal = make(chan op)

			go l.processLogChannel()
		}
	}()

	l.setConfigDefaults()
	err = l.checkAndRotate(0)

	return err
}

// setConfigDefaults does exactly what it says. Sets missing values.
func (l *Logger) setConfigDefaults() {
	if l.Filer == nil {
		l.Filer = filer.Default()
	}

	if l.config.Filepath == "" {
		l.config.Filepath = filepath.Join(os.TempDir(),
			filepath.Base(os.Args[0])+"-"+path.Dir(reflect.TypeOf((*Logger)(nil)).Elem().PkgPath())+".log")
	}

	if l.config.Policy.Kind == period.Default {
		l.config.Policy = period.Policy{Kind: period.MaxSize, Bytes: DefaultMaxSize}
	}

	if l.config.Policy.Kind == period.MaxSize && l.config.Policy.Bytes < 1 {
		l.config.Policy.Bytes = DefaultMaxSize
	}

	if l.config.Location == nil {
		l.config.Location = time.Local
	}

	if l.config.DirMode == 0 {
		l.config.DirMode = DirMode
	}

	if l.config.FileMode == 0 {
		l.config.FileMode = FileMode
	}

	if l.config.Diag == nil {
		l.config.Diag = func(msg string, v ...any) {
			fmt.Fprintf(os.Stderr, "[rollarr] "+msg+"\n", v...)
		}
	}
}

// diag reports a swallowed error to the configured diagnostic sink.
func (l *Logger) diag(msg string, v ...any) {
	l.config.Diag(msg, v...)
}

// processLogChannel runs in a go routine and reads the incoming logs channel.
// Received logs are dispatched to the write method. Replies are then sent to
// the response channel. This also handles rotation, reload, flush and routine
// shutdown. Everything happens in this one go routine, so no two operations
// ever touch the file state at the same time.
func (l *Logger) processLogChannel() {
	for {
		select {
		case b := <-l.log:
			size, err := l.write(b)
			l.resp <- &resp{int64(size), err}
		case oper, ok := <-l.signal:
			if !ok {
				l.signal = nil
				l.resp <- &resp{err: l.stop()}

				return
			}

			switch oper {
			case opRotate:
				size, err := l.rotate()
				l.resp <- &resp{size, err}
			case opReload:
				l.resp <- &resp{err: l.reload()}
			case opFlush:
				l.resp <- &resp{err: l.flush()}
			}
		}
	}
}

// openLog opens the log file for writing, creating any necessary folders.
// With truncate unset an existing file is appended to, and the file's
// creation time (not "now") seeds the roll schedule, so a file inherited
// across a restart still rolls on its original schedule. Rotation always
// passes truncate: a fresh file after every roll.
func (l *Logger) openLog(truncate bool) error {
	err := l.MkdirAll(filepath.Dir(l.config.Filepath), l.config.DirMode)
	if err != nil {
		return fmt.Errorf("making directories for logfiles: %w", err)
	}

	perm := os.O_WRONLY | os.O_APPEND
	l.size = 0
	l.created = time.Now()

	if info, err := l.Stat(l.config.Filepath); err != nil || truncate {
		// File doesn't exist, something's wrong, or a fresh file was asked for: truncate it!
		perm = os.O_WRONLY | os.O_TRUNC | os.O_CREATE
	} else {
		// File exists, append to it!
		l.size = info.Size()
		l.created = info.CreateTime
	}

	l.File, err = l.OpenFile(l.config.Filepath, perm, l.config.FileMode)
	if err != nil {
		return fmt.Errorf("error with new logfile: %w", err)
	}

	l.next = l.config.Policy.NextRoll(l.config.Location, l.created)
	l.opened = true

	return nil
}

// Write sends data to the log file. This satisfies the io.WriteCloser interface.
// You should generally not call this and instead pass *Logger into log.SetOutput().
func (l *Logger) Write(b []byte) (int, error) {
	l.log <- b
	resp := <-l.resp

	return int(resp.size), resp.err
}

// write sends a message into the log file after everyhing checks out - from a channel message.
func (l *Logger) write(b []byte) (int, error) {
	if err := l.checkAndRotate(int64(len(b))); err != nil {
		return 0, err
	}

	size, err := l.File.Write(b)
	l.size += int64(size)

	if err != nil {
		err = fmt.Errorf("error writing log msg: %w", err)
		l.diag("%v", err)

		return size, err
	}

	return size, nil
}

// checkAndRotate makes sure the log file is open and ready for writing, then
// rolls it if the time boundary has passed or the pending write would push it
// over the size limit. When the log file cannot be opened (e.g. permission
// denied), retries are backed off to avoid a storm of syscalls that can cause
// high CPU and IO.
func (l *Logger) checkAndRotate(size int64) error {
	if l.File == nil {
		if l.lastOpenErr != nil && time.Since(l.lastOpened) < openRetryInterval {
			return l.lastOpenErr
		}

		l.lastOpened = time.Now()
		err := l.openLog(!l.opened && l.config.Truncate)
		if err != nil {
			l.lastOpenErr = err

			return err
		}

		l.lastOpenErr = nil
	}

	maxBytes := l.config.Policy.MaxBytes()
	if size > maxBytes {
		return fmt.Errorf("%w: %d>%d", ErrWriteTooLarge, size, maxBytes)
	}

	if !time.Now().Before(l.next) || l.size+size > maxBytes {
		if _, err := l.rotate(); err != nil {
			return err
		}
	}

	return nil
}

// Rotate forces the log to roll immediately. Returns the size of the rotated log.
func (l *Logger) Rotate() (int64, error) {
	l.signal <- opRotate
	resp := <-l.resp

	return resp.size, resp.err
}

// Reload swaps in a freshly opened log file. Call this after an external tool
// (e.g. logrotate) renamed the live file out from under the logger, typically
// from a SIGHUP handler; see ReloadOn. No writes are lost: the swap happens
// between messages, and the previous handle is closed only after the new one
// is in place.
func (l *Logger) Reload() error {
	l.signal <- opReload

	return (<-l.resp).err
}

// reload swaps in a freshly opened stream - from a channel message.
// If the new open fails the old stream stays in service.
func (l *Logger) reload() error {
	var (
		old     = l.File
		size    = l.size
		created = l.created
		next    = l.next
	)

	if err := l.openLog(false); err != nil {
		l.File, l.size, l.created, l.next = old, size, created, next
		l.diag("reloading log file: %v", err)

		return err
	}

	if old != nil {
		if err := old.Close(); err != nil {
			l.diag("closing previous log file: %v", err)
		}
	}

	return nil
}

// Flush forces the active log file to stable storage.
func (l *Logger) Flush() error {
	l.signal <- opFlush

	return (<-l.resp).err
}

// flush syncs the active log file - from a channel message.
func (l *Logger) flush() error {
	if l.File == nil {
		return nil
	}

	if err := l.File.Sync(); err != nil {
		return fmt.Errorf("syncing log file: %w", err)
	}

	return nil
}

// Close stops the go routine and closes the active log file session and all
// channels. Calling Close again returns nil. A Write() after Close panics.
func (l *Logger) Close() error {
	var err error

	l.closeOnce.Do(func() {
		defer close(l.resp)
		close(l.signal)
		err = (<-l.resp).err
	})

	return err
}

// close closes the active log file - from a channel message.
func (l *Logger) close() error {
	if l.File == nil {
		return nil
	}

	err := l.File.Close()
	l.File = nil

	if err != nil {
		return fmt.Errorf("closing log file %s: %w", l.config.Filepath, err)
	}

	return nil
}

// stop closes everything down.
func (l *Logger) stop() error {
	if l.log != nil {
		close(l.log)
	}

	l.log = nil

	if err := l.flush(); err != nil {
		l.diag("%v", err)
	}

	return l.close()
}

// Our Logger must satisfy the full Roller surface.
var _ Roller = (*Logger)(nil)
