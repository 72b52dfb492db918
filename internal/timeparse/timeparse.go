// Package timeparse converts the free-text time columns of the daily
// performance report into numbers.
//
// Both functions are total: they never panic and never return an error.
// Unparseable input maps to a documented sentinel instead.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	hoursMinutesPattern = regexp.MustCompile(`^(\d+)時(\d+)分`)
	minutesPattern      = regexp.MustCompile(`(\d+)分`)
)

// ParseDurationMinutes converts "<H>時<M>分" or "<M>分" into elapsed minutes.
// Empty or unrecognised text yields 0.
func ParseDurationMinutes(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if m := hoursMinutesPattern.FindStringSubmatch(text); m != nil {
		hours, errH := strconv.Atoi(m[1])
		minutes, errM := strconv.Atoi(m[2])
		if errH != nil || errM != nil {
			return 0
		}
		return hours*60 + minutes
	}

	if m := minutesPattern.FindStringSubmatch(text); m != nil {
		minutes, err := strconv.Atoi(m[1])
		if err != nil {
			return 0
		}
		return minutes
	}

	return 0
}

// ParseHourOfDay returns the hour of an "H:MM" style time of day, taken from
// the first colon-delimited segment. ok is false when the text is empty or
// the segment is not a non-negative integer, so "-1:00" has no hour even
// though it is an integer prefix. Hour 0 is a valid result and is never used
// to signal absence.
func ParseHourOfDay(text string) (hour int, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	head, _, _ := strings.Cut(text, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || hour < 0 {
		return 0, false
	}
	return hour, true
}
