package rollarr

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Joiner sits between the file name prefix and the time stamp on rotated files.
const Joiner = "-"

// rotate renames the live log and opens a fresh one - from a channel message.
// Returns the size of the rotated log. A failed rename or reopen leaves the
// logger without an open file; the next write retries the open (with backoff),
// so the logger recovers on its own.
func (l *Logger) rotate() (int64, error) {
	size := l.size

	if err := l.close(); err != nil {
		l.diag("%v", err)
	}

	if err := l.Rename(l.config.Filepath, l.rotatedName()); err != nil {
		err = fmt.Errorf("error renaming log: %w", err)
		l.diag("%v", err)

		return size, err
	}

	l.lastOpenErr = l.openLog(true)
	if l.lastOpenErr != nil {
		l.lastOpened = time.Now()
		l.diag("reopening log file: %v", l.lastOpenErr)

		return size, l.lastOpenErr
	}

	if err := l.prune(); err != nil {
		l.diag("pruning rotated logs: %v", err)
	}

	return size, nil
}

// rotatedName derives the backup file name from the live file name and the
// time the live file was opened. The time stamp goes before the extension:
// app.log becomes app-20240301.log. When the stamped name is already taken
// (several size-based rolls inside one stamp granule), a counter is added.
func (l *Logger) rotatedName() string {
	var (
		ext    = filepath.Ext(l.config.Filepath)
		prefix = strings.TrimSuffix(l.config.Filepath, ext)
		stamp  = l.config.Policy.Suffix(l.config.Location, l.created)
		name   = prefix + Joiner + stamp + ext
	)

	for count := 1; ; count++ {
		if _, err := l.Stat(name); err != nil {
			return name
		}

		name = prefix + Joiner + stamp + Joiner + strconv.Itoa(count) + ext
	}
}

// prune deletes the oldest rotated files once there are more than Keep of
// them - from a channel message, after a roll. The time-stamped names sort
// chronologically, so the oldest files are simply the first ones.
func (l *Logger) prune() error {
	if l.config.Keep < 1 {
		return nil
	}

	var (
		dir    = filepath.Dir(l.config.Filepath)
		live   = filepath.Base(l.config.Filepath)
		prefix = strings.TrimSuffix(live, filepath.Ext(live)) + Joiner
	)

	fileList, err := l.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing rotated logs: %w", err)
	}

	backups := []string{}

	for _, file := range fileList {
		if name := file.Name(); name != live && strings.HasPrefix(name, prefix) {
			backups = append(backups, name)
		}
	}

	sort.Strings(backups)

	for ; len(backups) > l.config.Keep; backups = backups[1:] {
		if err := l.Remove(filepath.Join(dir, backups[0])); err != nil {
			return fmt.Errorf("error removing file: %w", err)
		}
	}

	return nil
}
