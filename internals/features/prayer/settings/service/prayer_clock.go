package service

import (
	"fmt"
	"regexp"
	"strconv"
)

var clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2})`)

const minutesPerDay = 24 * 60

// ApplyOffset shifts a 24-hour "HH:MM" time by offset minutes, wrapping
// around midnight. ok is false when raw does not start with HH:MM.
func ApplyOffset(raw string, offset int) (string, bool) {
	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])

	total := ((h*60+mm+offset)%minutesPerDay + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", total/60, total%60), true
}

// To12Hour renders "HH:MM" as "hh:MM AM/PM"; anything else is "N/A".
func To12Hour(hhmm string) string {
	m := clockPattern.FindStringSubmatch(hhmm)
	if m == nil {
		return "N/A"
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])

	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, mm, period)
}
