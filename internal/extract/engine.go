// Package extract turns a free-text line into an intent frame.
//
// Every field is produced by an independent scanner that reads the whole
// line; no scanner consumes text another scanner needs. The title is derived
// separately by removing everything the scanners recognise.
package extract

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/runoshun/braindump/internal/domain"
)

// Frame is the structured result of extracting one line.
// Fields are ordered to minimize memory padding.
type Frame struct {
	Title      string
	Owner      string
	Date       string            // YYYY-MM-DD
	Time       string            // HH:MM, empty when absent
	Project    string            // empty when absent
	Recurrence domain.Recurrence // empty when absent
	Duration   int               // minutes, 0 when absent
	Urgent     bool
	OwnerFound bool // true if Owner came from a mention or a "Name:" prefix
}

// input is the read-only view every scanner receives.
type input struct {
	ref time.Time
	raw string
}

// scanner fills exactly one field of the frame.
type scanner func(in *input, f *Frame)

// ownerPattern matches one configured owner.
type ownerPattern struct {
	name    string
	mention *regexp.Regexp
	prefix  *regexp.Regexp
}

// Engine is an immutable extraction pipeline bound to an owner list.
// It is safe for concurrent use.
type Engine struct {
	defaultOwner string
	owners       []ownerPattern
	scanners     []scanner
	removals     []removal
}

// New creates an Engine for the given owners.
// The first owner is the default; an empty list falls back to domain.FallbackOwner.
func New(owners []string) *Engine {
	settings := domain.NormalizeSettings(domain.Settings{Owners: owners}, nil)
	e := &Engine{
		defaultOwner: settings.DefaultOwner(),
		owners:       make([]ownerPattern, 0, len(settings.Owners)),
	}
	for _, name := range settings.Owners {
		e.owners = append(e.owners, compileOwner(name))
	}
	e.scanners = []scanner{
		scanDate,
		scanUrgency,
		e.scanOwner,
		scanDuration,
		scanTime,
		scanRecurrence,
		scanProject,
	}
	// Multi-word phrases go first so "chaque lundi" is removed before "lundi" alone.
	e.removals = slices.Concat(fieldRemovals(), dateRemovals(), urgencyRemovals())
	for _, o := range e.owners {
		e.removals = append(e.removals, remove(o.mention, o.prefix)...)
	}
	return e
}

// WithDefaultOwner returns a copy of the engine whose owner fallback is owner.
// An empty owner keeps the current default.
func (e *Engine) WithDefaultOwner(owner string) *Engine {
	if owner == "" {
		return e
	}
	cp := *e
	cp.defaultOwner = owner
	return &cp
}

// DefaultOwner returns the owner used when a line names nobody.
func (e *Engine) DefaultOwner() string {
	return e.defaultOwner
}

// Extract builds a frame from raw relative to ref.
// It returns nil for empty or whitespace-only input.
func (e *Engine) Extract(raw string, ref time.Time) *Frame {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	in := &input{raw: raw, ref: ref}
	f := &Frame{}
	for _, scan := range e.scanners {
		scan(in, f)
	}
	f.Title = e.CleanTitle(raw, ref)
	return f
}

// scanOwner picks the first owner, in list order, mentioned as "@name";
// failing that, the first owner used as a "Name:" prefix.
func (e *Engine) scanOwner(in *input, f *Frame) {
	for _, o := range e.owners {
		if o.mention.MatchString(in.raw) {
			f.Owner, f.OwnerFound = o.name, true
			return
		}
	}
	for _, o := range e.owners {
		if o.prefix.MatchString(in.raw) {
			f.Owner, f.OwnerFound = o.name, true
			return
		}
	}
	f.Owner = e.defaultOwner
}

// nameBoundary is a word boundary that also works for non-ASCII names.
const nameBoundary = `[^\p{L}\p{N}_]`

// keywordRe compiles a case-insensitive alternation that must stand as whole
// words. Accented letters count as word characters, so "urgenté" is not "urgent".
func keywordRe(alternation string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|` + nameBoundary + `)(?:` + alternation + `)(?:$|` + nameBoundary + `)`)
}

func compileOwner(name string) ownerPattern {
	quoted := regexp.QuoteMeta(name)
	return ownerPattern{
		name:    name,
		mention: regexp.MustCompile(`(?i)(?:^|` + nameBoundary + `)@` + quoted + `(?:$|` + nameBoundary + `)`),
		prefix:  regexp.MustCompile(`(?i)^\s*` + quoted + `\s*:`),
	}
}
