package roundtime

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Clock supplies the reference time for relative dates.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// absoluteLayouts are tried before natural language parsing.
var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2 2006",
	"January 2 2006",
}

// DateParser turns user input such as "2026-06-12", "today" or
// "next friday" into the calendar day a round is played.
type DateParser struct {
	clock    Clock
	location *time.Location
	parser   *when.Parser
}

// NewDateParser creates a parser anchored to clock in loc. A nil loc means UTC.
func NewDateParser(clock Clock, loc *time.Location) *DateParser {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &DateParser{clock: clock, location: loc, parser: w}
}

// Parse returns midnight of the matched day in the parser's location. An
// empty input means today.
func (p *DateParser) Parse(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	now := p.clock.Now().In(p.location)
	if input == "" {
		return startOfDay(now), nil
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, input, p.location); err == nil {
			return startOfDay(t.In(p.location)), nil
		}
	}

	r, err := p.parser.Parse(strings.ToLower(input), now)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse round date %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize round date %q", input)
	}
	return startOfDay(r.Time.In(p.location)), nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
