// Package timeparse resolves loosely-formatted French time phrases into
// absolute timestamps.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	inHoursRe = regexp.MustCompile(`dans\s+(\d+)\s+heure`)
	hourRe    = regexp.MustCompile(`(\d{1,2})\s*h`)
	atHourRe  = regexp.MustCompile(`(?:à\s*)?(\d{1,2})\s*h(?:\s*(\d{2}))?`)
)

// Resolve converts a phrase like "dans 2 heures", "demain à 9h", "ce soir"
// or "à 18h30" into an absolute time relative to now. Resolution order is
// fixed and only one path is taken; "demain soir" resolves through the
// demain rule, not a combination. Returns nil when nothing matches.
func Resolve(phrase string, now time.Time) *time.Time {
	if phrase == "" {
		return nil
	}
	s := strings.ToLower(phrase)

	if m := inHoursRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		t := now.Add(time.Duration(n) * time.Hour)
		return &t
	}

	if strings.Contains(s, "demain") {
		hour := 8
		if m := hourRe.FindStringSubmatch(s); m != nil {
			if h, err := strconv.Atoi(m[1]); err == nil {
				hour = h
			}
		}
		d := now.AddDate(0, 0, 1)
		t := time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, now.Location())
		return &t
	}

	for _, p := range []struct {
		keyword string
		hour    int
	}{
		{"soir", 18},
		{"matin", 8},
		{"midi", 12},
		{"nuit", 21},
	} {
		if strings.Contains(s, p.keyword) {
			t := time.Date(now.Year(), now.Month(), now.Day(), p.hour, 0, 0, 0, now.Location())
			return &t
		}
	}

	if m := atHourRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		t := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if !t.After(now) {
			t = t.AddDate(0, 0, 1) // next occurrence
		}
		return &t
	}

	return nil
}
