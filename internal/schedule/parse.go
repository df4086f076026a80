package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Accepted date layouts, most specific first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
}

// ParseDate normalizes supported date inputs to a midnight time value.
func ParseDate(value string) (time.Time, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date %q", value)
}

// ParseClock normalizes supported time-of-day inputs. Accepts HH:MM and the
// colon-less HHMM / HMM forms.
func ParseClock(value string) (Clock, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return Clock{}, fmt.Errorf("time is empty")
	}

	// allow HHmm without colon
	if !strings.Contains(cleaned, ":") && (len(cleaned) == 3 || len(cleaned) == 4) {
		cleaned = cleaned[:len(cleaned)-2] + ":" + cleaned[len(cleaned)-2:]
	}

	for _, layout := range []string{"15:04", "3:04"} {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return Clock{}, fmt.Errorf("unsupported time %q", value)
}
