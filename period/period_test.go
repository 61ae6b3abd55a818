package period_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golift.io/rollarr/period"
)

// zone is an arbitrary non-UTC zone so the tests catch code that
// accidentally computes boundaries in UTC.
var zone = time.FixedZone("UTC-7", -7*60*60) //nolint:gochecknoglobals

func TestNextRollHourly(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	policy := period.Policy{Kind: period.Hourly}

	now := time.Date(2024, 3, 1, 13, 37, 42, 123, zone)
	assert.Equal(time.Date(2024, 3, 1, 14, 0, 0, 0, zone), policy.NextRoll(zone, now))

	// Exactly at the top of the hour still advances a full hour.
	now = time.Date(2024, 3, 1, 13, 0, 0, 0, zone)
	assert.Equal(time.Date(2024, 3, 1, 14, 0, 0, 0, zone), policy.NextRoll(zone, now))

	// Rolls over midnight.
	now = time.Date(2024, 2, 29, 23, 59, 59, 0, zone)
	assert.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, zone), policy.NextRoll(zone, now))
}

func TestNextRollDaily(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	policy := period.Policy{Kind: period.Daily}

	now := time.Date(2024, 3, 1, 13, 37, 42, 0, zone)
	assert.Equal(time.Date(2024, 3, 2, 0, 0, 0, 0, zone), policy.NextRoll(zone, now))

	// Exactly at midnight the next roll is the *following* midnight.
	now = time.Date(2024, 3, 1, 0, 0, 0, 0, zone)
	assert.Equal(time.Date(2024, 3, 2, 0, 0, 0, 0, zone), policy.NextRoll(zone, now))

	// The boundary belongs to the configured zone, not the input's.
	now = time.Date(2024, 3, 1, 1, 30, 0, 0, time.UTC) // 2024-02-29 18:30 in zone.
	assert.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, zone), policy.NextRoll(zone, now))
}

func TestNextRollWeekly(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	start := time.Date(2024, 3, 1, 13, 37, 0, 0, zone) // a Friday.

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		for day := 0; day < 8; day++ {
			now := start.AddDate(0, 0, day)
			policy := period.Policy{Kind: period.Weekly, Weekday: weekday}
			next := policy.NextRoll(zone, now)

			assert.Equal(weekday, next.Weekday(), "must land on the configured weekday")
			assert.True(next.After(now), "must be strictly after now")
			assert.False(next.After(now.AddDate(0, 0, 7)), "must be within seven days")

			hour, minute, sec := next.Clock()
			assert.Zero(hour+minute+sec, "must land on midnight")
		}
	}

	// Already on the roll weekday: still a full week out.
	policy := period.Policy{Kind: period.Weekly, Weekday: time.Friday}
	midnight := time.Date(2024, 3, 1, 0, 0, 0, 0, zone)
	assert.Equal(midnight.AddDate(0, 0, 7), policy.NextRoll(zone, midnight))
}

func TestNextRollSentinel(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	now := time.Date(2024, 3, 1, 13, 37, 0, 0, zone)

	for _, policy := range []period.Policy{
		{Kind: period.Never},
		{Kind: period.MaxSize, Bytes: 1024},
	} {
		next := policy.NextRoll(zone, now)
		assert.True(next.After(now.AddDate(99, 0, 0)), "the sentinel must be practically unreachable")
	}
}

func TestMaxBytes(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal(int64(1024), period.Policy{Kind: period.MaxSize, Bytes: 1024}.MaxBytes())
	assert.Equal(int64(math.MaxInt64), period.Policy{Kind: period.MaxSize}.MaxBytes())
	assert.Equal(int64(math.MaxInt64), period.Policy{Kind: period.Never}.MaxBytes())
	assert.Equal(int64(math.MaxInt64), period.Policy{Kind: period.Daily}.MaxBytes())
}

func TestSuffix(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	when := time.Date(2024, 3, 1, 13, 37, 42, 0, time.UTC)

	assert.Equal("2024", period.Policy{Kind: period.Never}.Suffix(time.UTC, when))
	assert.Equal("2024030113", period.Policy{Kind: period.Hourly}.Suffix(time.UTC, when))
	assert.Equal("20240301", period.Policy{Kind: period.Daily}.Suffix(time.UTC, when))
	assert.Equal("20240301", period.Policy{Kind: period.Weekly}.Suffix(time.UTC, when))
	assert.Equal("20240301133742", period.Policy{Kind: period.MaxSize}.Suffix(time.UTC, when))

	// The stamp is rendered in the logger's zone, not the input's.
	assert.Equal("20240301063742",
		period.Policy{Kind: period.MaxSize}.Suffix(zone, when))
}
