// Package main is a simple example app to write logs to see log rotation in action.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"
	"time"

	"golift.io/rollarr"
	"golift.io/rollarr/period"
)

// ///////////////////////////////////////////////////////////////////////// //

/* This is a simple example app to write logs to see log rotation in action. */

// Usage, size-based rotation:
//   go run ./cmd/exampleapp size
//
// Usage, hourly rotation:
//   go run ./cmd/exampleapp hour
//
// Usage, no rotation, reload on SIGHUP (rename the file, then kill -HUP):
//   go run ./cmd/exampleapp never

const (
	logFileSize     = 1024 * 1024 // 1 megabyte.
	logFilePath     = "/tmp/myfolder/myfile.log"
	bytesPerLogLine = 5000
	timeBetweenLogs = time.Millisecond * 5
	fileCount       = 10
)

// ///////////////////////////////////////////////////////////////////////// //

func main() {
	var policy period.Policy

	switch {
	case isArg("size"):
		policy = period.Policy{Kind: period.MaxSize, Bytes: logFileSize}
	case isArg("hour"):
		policy = period.Policy{Kind: period.Hourly}
	case isArg("day"):
		policy = period.Policy{Kind: period.Daily}
	case isArg("never"):
		policy = period.Policy{Kind: period.Never}
	default:
		fmt.Println("pass test arg: size, hour, day or never")
		os.Exit(1)
	}

	logger, err := rollarr.New(&rollarr.Config{
		Filepath: logFilePath,
		Policy:   policy,
		Keep:     fileCount,
		Diag: func(msg string, v ...any) {
			fmt.Printf("\n"+msg+"\n", v...)
		},
	})
	if err != nil {
		panic(err)
	}

	// The reload trigger: logrotate (or you) renames the file, sends
	// SIGHUP, and the logger starts a fresh one.
	stop := rollarr.ReloadOn(logger, syscall.SIGHUP)
	defer stop()

	log.SetFlags(log.LstdFlags)
	log.SetOutput(logger)
	makeLogs()
}

// Write fake logs!
func makeLogs() {
	logLine := string(bytes.Repeat([]byte{'_'}, bytesPerLogLine))

	ticker := time.NewTicker(timeBetweenLogs)
	for range ticker.C {
		fmt.Print(".")

		err := log.Output(0, logLine)
		if err != nil {
			panic(err)
		}
	}
}

// seems easy, but flag is better.
func isArg(arg string) bool {
	for _, a := range os.Args {
		if strings.EqualFold(a, arg) {
			return true
		}
	}

	return false
}
