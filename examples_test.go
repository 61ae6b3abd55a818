package rollarr_test

import (
	"log"
	"syscall"
	"time"

	"golift.io/rollarr"
	"golift.io/rollarr/period"
)

// This example shows how to create backup log files just like
// https://github.com/natefinch/lumberjack. Files rotate at 100Mb and the
// ten newest backups are kept. Backup files are named with a time stamp.
func Example_lumberjack() {
	log.SetOutput(rollarr.NewMust(&rollarr.Config{
		Filepath: "/var/log/file.log", // optional.
		Policy:   period.Policy{Kind: period.MaxSize, Bytes: 100 * 1024 * 1024},
		Keep:     10,    // delete the oldest backups past ten.
		DirMode:  0o755, // world-readable.
	}))
}

// This example demonstrates every Config struct member. The file rolls at
// midnight UTC every Sunday and a month of backups stays on disk.
func ExampleNew() {
	rotator, err := rollarr.New(&rollarr.Config{
		Filepath: "/var/log/service.log",                                // not required, but recommended.
		Policy:   period.Policy{Kind: period.Weekly, Weekday: time.Sunday}, // required, has a lousy default.
		Location: time.UTC,                                              // boundaries and stamps in UTC.
		Truncate: false,                                                 // append to an existing file.
		Keep:     4,                                                     // four weekly backups ≈ a month.
		FileMode: rollarr.FileMode,                                      // default: 0600
		DirMode:  rollarr.DirMode,                                       // default: 0750
		Diag:     log.Printf,                                            // where swallowed errors go.
		Filer:    nil,                                                   // use default: os procedures.
	})
	if err != nil {
		panic(err)
	}

	log.SetOutput(rotator)
}

func ExampleNewMust() {
	log.SetOutput(rollarr.NewMust(&rollarr.Config{
		Filepath: "/var/log/service.log",
		Policy:   period.Policy{Kind: period.Daily},
		Keep:     30,
	}))
}

// Roll the log at a moment of your choosing.
func ExampleLogger_Rotate() {
	rotator := rollarr.NewMust(&rollarr.Config{
		Filepath: "/var/log/service.log",
		Policy:   period.Policy{Kind: period.Daily},
	})
	log.SetOutput(rotator)

	if _, err := rotator.Rotate(); err != nil {
		log.Printf("rotation failed: %v", err)
	}
}

// Let logrotate manage the files: it renames the live log, sends SIGHUP,
// and the logger picks up a fresh file without dropping a line.
func ExampleReloadOn() {
	rotator := rollarr.NewMust(&rollarr.Config{
		Filepath: "/var/log/service.log",
		Policy:   period.Policy{Kind: period.Never}, // logrotate decides when.
	})
	log.SetOutput(rotator)

	stop := rollarr.ReloadOn(rotator, syscall.SIGHUP)
	defer stop()
}
