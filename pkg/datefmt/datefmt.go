// Package datefmt renders course and application dates the way the portal prints them.
package datefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04",
}

// FormatTime converts a 24-hour "HH:MM" value into "H:MM AM|PM".
func FormatTime(time24 string) (string, error) {
	parts := strings.Split(strings.TrimSpace(time24), ":")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid time %q", time24)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return "", fmt.Errorf("invalid hour in %q", time24)
	}
	minutes := parts[1]
	if m, err := strconv.Atoi(minutes); err != nil || m < 0 || m > 59 || len(minutes) != 2 {
		return "", fmt.Errorf("invalid minutes in %q", time24)
	}

	period := "AM"
	hours12 := hours
	if hours >= 12 {
		period = "PM"
		if hours > 12 {
			hours12 -= 12
		}
	}
	if hours12 == 0 {
		hours12 = 12
	}
	return fmt.Sprintf("%d:%s %s", hours12, minutes, period), nil
}

// ParseDate accepts the date shapes the store emits.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// FormatDate renders a store date as dd/mm/yyyy.
func FormatDate(raw string) (string, error) {
	t, err := ParseDate(raw)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}

// Format renders t as dd/mm/yyyy.
func Format(t time.Time) string {
	return t.Format("02/01/2006")
}
