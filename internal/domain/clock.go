package domain

import (
	"fmt"
	"strings"
	"time"
)

// MinutesPerDay is the length of the time-of-day axis.
const MinutesPerDay = 24 * 60

// Clock is a time of day expressed as minutes since midnight.
// Valid values are in [0, MinutesPerDay). Unscheduled marks an activity that
// has no slot yet; it sorts after every scheduled time.
type Clock int

// Unscheduled is the sentinel Clock for activities without a time.
const Unscheduled Clock = -1

// DefaultDayStart is where the first floating activity of a day lands when
// nothing precedes it.
const DefaultDayStart Clock = 9 * 60

// ClockOf builds a Clock from an hour (0-23) and minute.
func ClockOf(hour, minute int) Clock {
	return Clock(hour*60 + minute).wrap()
}

// IsScheduled reports whether c is a real time of day.
func (c Clock) IsScheduled() bool {
	return c >= 0 && c < MinutesPerDay
}

// Add returns c shifted by minutes, wrapping past midnight.
// Adding to Unscheduled yields Unscheduled.
func (c Clock) Add(minutes int) Clock {
	if !c.IsScheduled() {
		return Unscheduled
	}
	return (c + Clock(minutes)).wrap()
}

func (c Clock) wrap() Clock {
	m := int(c) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return Clock(m)
}

// SortKey orders clocks with Unscheduled after every scheduled time.
func (c Clock) SortKey() int {
	if !c.IsScheduled() {
		return MinutesPerDay
	}
	return int(c)
}

// String renders c as a 12-hour display string such as "9:00 AM".
// Unscheduled renders as the empty string.
func (c Clock) String() string {
	if !c.IsScheduled() {
		return ""
	}
	h, m := int(c)/60, int(c)%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails:
// unparseable input becomes Unscheduled.
func (c *Clock) UnmarshalText(b []byte) error {
	*c = ParseClock(string(b))
	return nil
}

// clockLayouts are tried in order by ParseClock after the input is upper-cased.
var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15:04",
}

// ParseClock reads a display time such as "9:00 AM", "9:00am", "9 PM" or
// "14:30". Empty or malformed input returns Unscheduled.
func ParseClock(s string) Clock {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Unscheduled
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockOf(t.Hour(), t.Minute())
		}
	}
	return Unscheduled
}
