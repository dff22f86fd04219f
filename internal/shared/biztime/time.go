// Package biztime holds the business timezone.
// Storage and transport use UTC. The business timezone is used to derive
// calendar boundaries, such as the ISO week that partitions protocol numbers,
// and to render timestamps for people.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const DefaultTimezone = "Europe/Rome"

var (
	mu          sync.RWMutex
	bizLocation *time.Location
)

// Init sets the business timezone. An empty tz selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load business timezone %q: %w", tz, err)
	}
	mu.Lock()
	bizLocation = loc
	mu.Unlock()
	return nil
}

func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(err)
	}
}

// Location returns the business timezone, initializing the default on first use.
func Location() *time.Location {
	mu.RLock()
	loc := bizLocation
	mu.RUnlock()
	if loc == nil {
		MustInit("")
		return Location()
	}
	return loc
}

// Clock returns the current instant. Components that derive calendar values
// take a Clock so tests can pin the date.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}

// ISOWeek returns the ISO-8601 year and week of t as observed in the
// business timezone.
func ISOWeek(t time.Time) (year, week int) {
	return t.In(Location()).ISOWeek()
}

func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
