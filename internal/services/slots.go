package services

import (
	"fmt"
	"strings"
	"time"
)

var clockLayouts = []string{"3:04 PM", "3:04PM", "3 PM", "3PM", "15:04"}

func parseClockHour(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), true
		}
	}
	return 0, false
}

func formatClockHour(hour int) string {
	h := hour % 12
	if h == 0 {
		h = 12
	}
	if hour%24 >= 12 {
		return fmt.Sprintf("%d:00 PM", h)
	}
	return fmt.Sprintf("%d:00 AM", h)
}

// GenerateTimeSlots splits an opening window such as "6:00 AM - 11:00 PM" into
// one-hour slots. An end at or before the start runs past midnight. Anything
// unparseable yields no slots.
func GenerateTimeSlots(timing string) []string {
	slots := []string{}

	parts := strings.SplitN(timing, "-", 2)
	if len(parts) != 2 {
		return slots
	}
	start, ok := parseClockHour(parts[0])
	if !ok {
		return slots
	}
	end, ok := parseClockHour(parts[1])
	if !ok {
		return slots
	}
	if end <= start {
		end += 24
	}

	for hour := start; hour < end; hour++ {
		h := hour % 24
		slots = append(slots, formatClockHour(h)+" - "+formatClockHour((h+1)%24))
	}
	return slots
}
