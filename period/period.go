// Package period holds the rotation policies understood by rollarr.
// A Policy decides when the live log file rolls: at a calendar boundary
// (hourly, daily, or weekly on a chosen weekday), when the file grows past
// a byte limit, or never. The derivations in this package are pure; all
// calendar math happens in the *time.Location the logger is configured with.
package period

import (
	"math"
	"time"
)

// Kind selects a rotation strategy. The zero value is Default,
// which lets the logger substitute its own default policy.
type Kind uint8

// The available rotation strategies.
const (
	Default Kind = iota // Unset. The logger replaces this with MaxSize at its default limit.
	Never               // No rotation, ever. Rotate() still works.
	Hourly              // Roll at the top of every hour.
	Daily               // Roll at local midnight.
	Weekly              // Roll at local midnight on Policy.Weekday.
	MaxSize             // Roll when the file would grow past Policy.Bytes.
)

// Policy describes when the live log file rotates.
// Use a struct literal: period.Policy{Kind: period.Daily}, or
// period.Policy{Kind: period.Weekly, Weekday: time.Monday}, or
// period.Policy{Kind: period.MaxSize, Bytes: 10 * 1024 * 1024}.
type Policy struct {
	Kind    Kind
	Weekday time.Weekday // Roll day. Only used by Weekly.
	Bytes   int64        // Size limit. Only used by MaxSize.
}

// Suffix layouts, per policy granularity. MaxSize gets second granularity
// because it may roll several times within the same day (or minute).
const (
	LayoutYear   = "2006"
	LayoutDay    = "20060102"
	LayoutHour   = "2006010215"
	LayoutSecond = "20060102150405"
)

// NextRoll returns the instant the next time-based roll is due, computed
// from now in the provided location. The result is always strictly after
// now: a Daily policy evaluated exactly at midnight returns the following
// midnight. Policies without a time component (Never, MaxSize) return a
// sentinel a century out.
func (p Policy) NextRoll(loc *time.Location, now time.Time) time.Time {
	now = now.In(loc).Truncate(time.Minute)
	year, month, day := now.Date()

	switch p.Kind {
	case Hourly:
		return time.Date(year, month, day, now.Hour()+1, 0, 0, 0, loc)
	case Daily:
		return time.Date(year, month, day+1, 0, 0, 0, 0, loc)
	case Weekly:
		next := time.Date(year, month, day+1, 0, 0, 0, 0, loc)
		for next.Weekday() != p.Weekday {
			next = next.AddDate(0, 0, 1)
		}

		return next
	default: // Never, MaxSize, Default: time-based rolling is off.
		return now.AddDate(100, 0, 0)
	}
}

// MaxBytes returns the byte threshold that triggers a size-based roll,
// or math.MaxInt64 when the policy has no size component.
func (p Policy) MaxBytes() int64 {
	if p.Kind == MaxSize && p.Bytes > 0 {
		return p.Bytes
	}

	return math.MaxInt64
}

// SuffixLayout returns the Go time layout used to stamp rotated file names.
// The granularity follows the policy, so names stay short but unique:
// hours for Hourly, days for Daily and Weekly, seconds for MaxSize.
func (p Policy) SuffixLayout() string {
	switch p.Kind {
	case Never:
		return LayoutYear
	case Hourly:
		return LayoutHour
	case Daily, Weekly:
		return LayoutDay
	default: // MaxSize, Default.
		return LayoutSecond
	}
}

// Suffix renders when in the provided location using the policy's layout.
// This becomes part of the rotated file name, so names sort chronologically.
func (p Policy) Suffix(loc *time.Location, when time.Time) string {
	return when.In(loc).Format(p.SuffixLayout())
}
