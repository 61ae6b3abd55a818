// Package rollarr is a rolling log writer designed to plug directly into a
// standard go logger. It appends formatted lines to a file and transparently
// rolls that file on a schedule (hourly, daily, or weekly at local midnight)
// or when it grows past a size limit, keeping only as many rotated files as
// you ask for. Inspired by Lumberjack: https://github.com/natefinch/lumberjack.
//
// The New() methods return a simple io.WriteCloser that works with most log
// packages: the log package formats the lines, rollarr owns the file. Rolling
// policies live in the `period` subpackage:
//
//	https://pkg.go.dev/golift.io/rollarr/period
//
// Rotated files are named from the live file by inserting a time stamp before
// the extension, so app.log rolled on March 1st 2024 under a daily policy
// becomes app-20240301.log. The stamp granularity follows the policy, and the
// names sort chronologically.
//
// A Logger also plays nice with external log-management tools: wire SIGHUP to
// Reload() with ReloadOn() and logrotate can rename the live file out-of-band
// without losing a single line.
//
// Use this package if you write your own log file, and you're tired of your
// log file growing indefinitely.
package rollarr
