package extract

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	spaceBeforePunctRe = regexp.MustCompile(`\s+([,;.])`)
	repeatedPunctRe    = regexp.MustCompile(`([,;])(?:\s*[,;])+`)
)

// removal blanks the matches of re. When accept is set, only the matches it
// approves are blanked; the others stay in the title verbatim.
type removal struct {
	re     *regexp.Regexp
	accept func(m []string, before string, ref time.Time) bool
}

// remove blanks every match of re.
func remove(res ...*regexp.Regexp) []removal {
	out := make([]removal, len(res))
	for i, re := range res {
		out[i] = removal{re: re}
	}
	return out
}

func (r removal) apply(s string, ref time.Time) string {
	if r.accept == nil {
		return r.re.ReplaceAllString(s, " ")
	}
	var b strings.Builder
	last := 0
	for _, loc := range r.re.FindAllStringSubmatchIndex(s, -1) {
		if !r.accept(submatches(s, loc), s[:loc[0]], ref) {
			continue
		}
		b.WriteString(s[last:loc[0]])
		b.WriteByte(' ')
		last = loc[1]
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

func submatches(s string, loc []int) []string {
	m := make([]string, len(loc)/2)
	for i := range m {
		if loc[2*i] >= 0 {
			m[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}
	return m
}

// CleanTitle removes every keyword, marker and owner mention the scanners
// would accept relative to ref, collapses whitespace and trims surrounding
// punctuation. Tokens no scanner accepts, such as "25:00" or "31/02", stay.
// It is idempotent: CleanTitle(CleanTitle(s, ref), ref) == CleanTitle(s, ref).
func (e *Engine) CleanTitle(s string, ref time.Time) string {
	// Every removal replaces at least two characters with one space, so a
	// pass that changes s also shortens it and the loop terminates.
	for {
		next := e.cleanPass(s, ref)
		if next == s {
			return s
		}
		s = next
	}
}

// cleanPass applies each removal once. Removing a token can join words that
// form a new keyword ("next urgent week"), hence the fixpoint loop.
func (e *Engine) cleanPass(s string, ref time.Time) string {
	for _, r := range e.removals {
		s = r.apply(s, ref)
	}
	s = strings.Join(strings.Fields(s), " ")
	s = spaceBeforePunctRe.ReplaceAllString(s, "$1")
	s = repeatedPunctRe.ReplaceAllString(s, "$1")
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
}
