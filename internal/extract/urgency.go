package extract

import "regexp"

var (
	bangsRe          = regexp.MustCompile(`!{2,}`)
	urgencyKeywordRe = keywordRe(`urgent|urgente|urgently|urgence|asap|a\.s\.a\.p|critical|critique|important|importante|prioritaire|priority|emergency`)
)

// scanUrgency flags the line when it has "!!" or an urgency keyword.
func scanUrgency(in *input, f *Frame) {
	f.Urgent = IsUrgent(in.raw)
}

// IsUrgent reports whether raw carries an urgency marker.
func IsUrgent(raw string) bool {
	return bangsRe.MatchString(raw) || urgencyKeywordRe.MatchString(raw)
}

func urgencyRemovals() []removal {
	return remove(bangsRe, urgencyKeywordRe)
}
