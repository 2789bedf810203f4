package reminder

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrUnrecognizedTime = errors.New("unrecognized time")

var clockPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)?$`)

// ParseTime resolves a spoken time clause ("5 pm", "5:30 pm", "17:45", "noon",
// "midnight") to its next occurrence after now.
func ParseTime(text string, now time.Time) (time.Time, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.TrimPrefix(text, "at ")

	var hour, minute int
	switch text {
	case "noon", "midday":
		hour = 12
	case "midnight":
		hour = 0
	default:
		m := clockPattern.FindStringSubmatch(text)
		if m == nil {
			return time.Time{}, ErrUnrecognizedTime
		}
		hour, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if minute > 59 {
			return time.Time{}, ErrUnrecognizedTime
		}

		switch strings.ReplaceAll(m[3], ".", "") {
		case "am":
			if hour < 1 || hour > 12 {
				return time.Time{}, ErrUnrecognizedTime
			}
			if hour == 12 {
				hour = 0
			}
		case "pm":
			if hour < 1 || hour > 12 {
				return time.Time{}, ErrUnrecognizedTime
			}
			if hour != 12 {
				hour += 12
			}
		default:
			// A bare number needs minutes or a 24-hour value to be unambiguous.
			if hour > 23 || (m[2] == "" && hour <= 12) {
				return time.Time{}, ErrUnrecognizedTime
			}
		}
	}

	due := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !due.After(now) {
		due = due.AddDate(0, 0, 1)
	}
	return due, nil
}
