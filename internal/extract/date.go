package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/runoshun/braindump/internal/domain"
)

var (
	todayRe       = keywordRe(`today|tonight|aujourd['’]hui|auj|ce\s+soir`)
	tomorrowRe    = keywordRe(`tomorrow|tmrw|demain`)
	dayAfterRe    = keywordRe(`(?:the\s+)?day\s+after\s+tomorrow|apr[eè]s[-\s]demain`)
	endOfWeekRe   = keywordRe(`this\s+week|end\s+of\s+(?:the\s+)?week|cette\s+semaine|fin\s+de\s+(?:la\s+)?semaine`)
	nextWeekRe    = keywordRe(`next\s+week|(?:la\s+)?semaine\s+prochaine`)
	weekdayRe     = keywordRe(`(?:(?:on|next|this|ce|le)\s+)?(` + weekdayAlternation + `)s?(?:\s+prochain)?`)
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?\b`)
)

const weekdayAlternation = `monday|tuesday|wednesday|thursday|friday|saturday|sunday|` +
	`lundi|mardi|mercredi|jeudi|vendredi|samedi|dimanche`

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
	"lundi":     time.Monday,
	"mardi":     time.Tuesday,
	"mercredi":  time.Wednesday,
	"jeudi":     time.Thursday,
	"vendredi":  time.Friday,
	"samedi":    time.Saturday,
	"dimanche":  time.Sunday,
}

// dateRule resolves a date if it recognises the text.
type dateRule func(raw string, ref time.Time) (time.Time, bool)

// dateRules are mutually exclusive and evaluated in order; the first match wins.
var dateRules = []dateRule{
	matchOffset(todayRe, 0),
	matchTomorrow,
	matchOffset(dayAfterRe, 2),
	matchEndOfWeek,
	matchNextWeek,
	matchWeekday,
	matchNumericDate,
}

func scanDate(in *input, f *Frame) {
	f.Date = ResolveDate(in.raw, in.ref)
}

// ResolveDate returns the calendar date named in raw, or ref's date if none.
func ResolveDate(raw string, ref time.Time) string {
	if d, ok := MatchDate(raw, ref); ok {
		return d
	}
	return domain.FormatDate(ref)
}

// MatchDate returns the calendar date named in raw. ok is false if no date
// keyword or numeric date was found.
func MatchDate(raw string, ref time.Time) (string, bool) {
	for _, rule := range dateRules {
		if d, ok := rule(raw, ref); ok {
			return domain.FormatDate(d), true
		}
	}
	return "", false
}

func matchOffset(re *regexp.Regexp, days int) dateRule {
	return func(raw string, ref time.Time) (time.Time, bool) {
		if !re.MatchString(raw) {
			return time.Time{}, false
		}
		return ref.AddDate(0, 0, days), true
	}
}

// matchTomorrow ignores "tomorrow" when it is part of "day after tomorrow".
func matchTomorrow(raw string, ref time.Time) (time.Time, bool) {
	stripped := dayAfterRe.ReplaceAllString(raw, " ")
	if !tomorrowRe.MatchString(stripped) {
		return time.Time{}, false
	}
	return ref.AddDate(0, 0, 1), true
}

// matchEndOfWeek resolves to the upcoming Friday (today if it is Friday).
func matchEndOfWeek(raw string, ref time.Time) (time.Time, bool) {
	if !endOfWeekRe.MatchString(raw) {
		return time.Time{}, false
	}
	offset := (int(time.Friday) - int(ref.Weekday()) + 7) % 7
	return ref.AddDate(0, 0, offset), true
}

// matchNextWeek resolves to the upcoming Monday, never today.
func matchNextWeek(raw string, ref time.Time) (time.Time, bool) {
	if !nextWeekRe.MatchString(raw) {
		return time.Time{}, false
	}
	return ref.AddDate(0, 0, weekdayOffset(ref, time.Monday)), true
}

// matchWeekday resolves the first weekday named in raw to its next future occurrence.
func matchWeekday(raw string, ref time.Time) (time.Time, bool) {
	m := weekdayRe.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, false
	}
	target := weekdays[strings.ToLower(m[1])]
	return ref.AddDate(0, 0, weekdayOffset(ref, target)), true
}

// weekdayOffset returns days until target; a weekday never resolves to today.
func weekdayOffset(ref time.Time, target time.Weekday) int {
	offset := (int(target) - int(ref.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return offset
}

// matchNumericDate handles DD/MM, DD/MM/YY and DD/MM/YYYY.
// Impossible dates such as 31/02 do not match.
func matchNumericDate(raw string, ref time.Time) (time.Time, bool) {
	for _, m := range numericDateRe.FindAllStringSubmatch(raw, -1) {
		if d, ok := numericDate(m, ref); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// numericDate converts a numericDateRe match; a missing year is ref's year.
func numericDate(m []string, ref time.Time) (time.Time, bool) {
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year := ref.Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
	}
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, ref.Location())
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return d, true
}

func dateRemovals() []removal {
	return append(
		remove(dayAfterRe, todayRe, tomorrowRe, endOfWeekRe, nextWeekRe, weekdayRe),
		removal{re: numericDateRe, accept: func(m []string, _ string, ref time.Time) bool {
			_, ok := numericDate(m, ref)
			return ok
		}},
	)
}
