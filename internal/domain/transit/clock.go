package transit

import "fmt"

// ClockMinutes is a time of day expressed as minutes after midnight.
type ClockMinutes int

// ParseClock parses a "HH:mm" time-of-day string.
func ParseClock(s string) (ClockMinutes, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return ClockMinutes(hour*60 + minute), nil
}

// Hour returns the hour component (0-23).
func (c ClockMinutes) Hour() int { return int(c) / 60 }

// Minute returns the minute component (0-59).
func (c ClockMinutes) Minute() int { return int(c) % 60 }

// String formats the time as "HH:mm".
func (c ClockMinutes) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour()%24, c.Minute())
}
