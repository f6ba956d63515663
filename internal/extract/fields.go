package extract

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/runoshun/braindump/internal/domain"
)

// Duration patterns, most specific first.
var (
	hoursMinutesRe = regexp.MustCompile(`(?i)\b(\d+)\s*h(?:ours?|rs?|eures?)?\s*(\d{1,2})\s*(?:m|mn|mins?|minutes?)\b`)
	hoursRe        = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*(?:h|hrs?|hours?|heures?)\b`)
	minutesRe      = regexp.MustCompile(`(?i)\b(\d+)\s*(?:m|mn|mins?|minutes?)\b`)

	// atPrefixRe detects "at"/"à" right before a number, which makes it a time.
	atPrefixRe = regexp.MustCompile(`(?i)(?:\bat|à)\s*$`)
)

// Time-of-day patterns.
var (
	atTimeRe    = regexp.MustCompile(`(?i)(?:\bat|(?:^|\s)à)\s*(\d{1,2})(?:\s*h(\d{2})?|:(\d{2}))?\s*(am|pm)?\b`)
	clockTimeRe = regexp.MustCompile(`(?i)\b(\d{1,2})[:h](\d{2})\s*(am|pm)?\b`)
	meridiemRe  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)\b`)
)

// Recurrence patterns, evaluated in order.
var recurrenceRules = []struct {
	re    *regexp.Regexp
	value domain.Recurrence
}{
	{keywordRe(`(?:(?:every|each|chaque)\s+(?:` + weekdayAlternation + `)|tous\s+les\s+(?:` + weekdayAlternation + `))s?`), domain.RecurrenceWeeklyOnWeekday},
	{keywordRe(`every\s*day|each\s+day|daily|tous\s+les\s+jours|chaque\s+jour|quotidien(?:ne)?(?:ment)?`), domain.RecurrenceDaily},
	{keywordRe(`every\s+week|each\s+week|weekly|chaque\s+semaine|toutes\s+les\s+semaines|hebdo(?:madaire)?`), domain.RecurrenceWeekly},
	{keywordRe(`every\s+month|each\s+month|monthly|chaque\s+mois|tous\s+les\s+mois|mensuel(?:le)?(?:ment)?`), domain.RecurrenceMonthly},
}

// Project patterns.
var (
	hashTagRe      = regexp.MustCompile(`(?:^|\s)#([\p{L}\p{N}_-]+)`)
	projectLabelRe = regexp.MustCompile(`(?i)(?:^|` + nameBoundary + `)(?:project|projet)\s*:\s*([\p{L}\p{N}_-]+)`)
)

func scanDuration(in *input, f *Frame) {
	f.Duration = ParseDuration(in.raw)
}

// ParseDuration returns the first duration in raw, in minutes, or 0.
// Numbers introduced by "at"/"à" are times of day and are skipped.
func ParseDuration(raw string) int {
	for _, loc := range hoursMinutesRe.FindAllStringSubmatchIndex(raw, -1) {
		if atPrefixRe.MatchString(raw[:loc[0]]) {
			continue
		}
		h, _ := strconv.Atoi(raw[loc[2]:loc[3]])
		m, _ := strconv.Atoi(raw[loc[4]:loc[5]])
		if total := h*60 + m; total > 0 {
			return total
		}
	}
	for _, loc := range hoursRe.FindAllStringSubmatchIndex(raw, -1) {
		if atPrefixRe.MatchString(raw[:loc[0]]) {
			continue
		}
		h, err := strconv.ParseFloat(strings.Replace(raw[loc[2]:loc[3]], ",", ".", 1), 64)
		if err != nil {
			continue
		}
		if total := int(math.Round(h * 60)); total > 0 {
			return total
		}
	}
	for _, loc := range minutesRe.FindAllStringSubmatchIndex(raw, -1) {
		m, _ := strconv.Atoi(raw[loc[2]:loc[3]])
		if m > 0 {
			return m
		}
	}
	return 0
}

func scanTime(in *input, f *Frame) {
	f.Time = ParseTime(in.raw)
}

// ParseTime returns the first valid time of day in raw as HH:MM, or "".
func ParseTime(raw string) string {
	for _, m := range atTimeRe.FindAllStringSubmatch(raw, -1) {
		minutes := m[2]
		if minutes == "" {
			minutes = m[3]
		}
		if t, ok := formatClock(m[1], minutes, m[4]); ok {
			return t
		}
	}
	for _, m := range clockTimeRe.FindAllStringSubmatch(raw, -1) {
		if t, ok := formatClock(m[1], m[2], m[3]); ok {
			return t
		}
	}
	for _, m := range meridiemRe.FindAllStringSubmatch(raw, -1) {
		if t, ok := formatClock(m[1], "", m[2]); ok {
			return t
		}
	}
	return ""
}

func formatClock(hours, minutes, meridiem string) (string, bool) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return "", false
	}
	m := 0
	if minutes != "" {
		if m, err = strconv.Atoi(minutes); err != nil {
			return "", false
		}
	}
	switch strings.ToLower(meridiem) {
	case "am":
		if h < 1 || h > 12 {
			return "", false
		}
		if h == 12 {
			h = 0
		}
	case "pm":
		if h < 1 || h > 12 {
			return "", false
		}
		if h != 12 {
			h += 12
		}
	}
	if h > 23 || m > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

func scanRecurrence(in *input, f *Frame) {
	f.Recurrence = ParseRecurrence(in.raw)
}

// ParseRecurrence returns the recurrence named in raw, or "" if none.
func ParseRecurrence(raw string) domain.Recurrence {
	for _, rule := range recurrenceRules {
		if rule.re.MatchString(raw) {
			return rule.value
		}
	}
	return ""
}

func scanProject(in *input, f *Frame) {
	f.Project = ParseProject(in.raw)
}

// ParseProject returns the first "#tag" or "project: name" in raw, or "".
func ParseProject(raw string) string {
	if m := hashTagRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := projectLabelRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return ""
}

// fieldRemovals blanks durations and times only where the scanners accept
// them, so "at 25" or "0min" stay in the title.
func fieldRemovals() []removal {
	out := []removal{
		{re: hoursMinutesRe, accept: func(m []string, before string, _ time.Time) bool {
			h, _ := strconv.Atoi(m[1])
			mins, _ := strconv.Atoi(m[2])
			return !atPrefixRe.MatchString(before) && h*60+mins > 0
		}},
		{re: atTimeRe, accept: func(m []string, _ string, _ time.Time) bool {
			minutes := m[2]
			if minutes == "" {
				minutes = m[3]
			}
			_, ok := formatClock(m[1], minutes, m[4])
			return ok
		}},
		{re: clockTimeRe, accept: func(m []string, _ string, _ time.Time) bool {
			_, ok := formatClock(m[1], m[2], m[3])
			return ok
		}},
		{re: meridiemRe, accept: func(m []string, _ string, _ time.Time) bool {
			_, ok := formatClock(m[1], "", m[2])
			return ok
		}},
		{re: hoursRe, accept: func(m []string, before string, _ time.Time) bool {
			h, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
			return err == nil && !atPrefixRe.MatchString(before) && math.Round(h*60) > 0
		}},
		{re: minutesRe, accept: func(m []string, _ string, _ time.Time) bool {
			mins, _ := strconv.Atoi(m[1])
			return mins > 0
		}},
	}
	out = append(out, remove(hashTagRe, projectLabelRe)...)
	for _, rule := range recurrenceRules {
		out = append(out, remove(rule.re)...)
	}
	return out
}
