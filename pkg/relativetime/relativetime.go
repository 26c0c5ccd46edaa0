// Package relativetime turns the free-text timestamps used across the
// product ("3天前", "1周前", "2024-05-01 10:00") into points in time.
//
// The grammar is closed and documented:
//
//	刚刚            now
//	<N>分钟前       now - N minutes
//	<N>小时前       now - N hours
//	<N>天前         now - N days
//	<N>周前         now - N*7 days
//	<N>个月前       now - N months (calendar)
//	<N>年前         now - N years (calendar)
//	anything else  generic date parse (dateparse), local time zone
//
// N is a non-negative decimal integer; surrounding whitespace is ignored.
// ParseRelative accepts only the relative forms, Parse adds the generic
// fallback.
package relativetime

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Parser resolves expressions against a clock.
type Parser struct {
	now func() time.Time
}

// New returns a parser using now as the clock. A nil now uses time.Now.
func New(now func() time.Time) *Parser {
	if now == nil {
		now = time.Now
	}
	return &Parser{now: now}
}

type unit struct {
	suffix string
	apply  func(t time.Time, n int) time.Time
}

// units is ordered so that longer suffixes sharing a tail are tried first.
var units = []unit{
	{"分钟前", func(t time.Time, n int) time.Time { return t.Add(-time.Duration(n) * time.Minute) }},
	{"小时前", func(t time.Time, n int) time.Time { return t.Add(-time.Duration(n) * time.Hour) }},
	{"个月前", func(t time.Time, n int) time.Time { return t.AddDate(0, -n, 0) }},
	{"天前", func(t time.Time, n int) time.Time { return t.AddDate(0, 0, -n) }},
	{"周前", func(t time.Time, n int) time.Time { return t.AddDate(0, 0, -7*n) }},
	{"年前", func(t time.Time, n int) time.Time { return t.AddDate(-n, 0, 0) }},
}

// Now returns the current reading of the parser's clock.
func (p *Parser) Now() time.Time { return p.now() }

// ParseRelative resolves only the relative forms of the grammar.
func (p *Parser) ParseRelative(s string) (time.Time, bool) {
	return ParseRelativeAt(s, p.now())
}

// Parse resolves s with the full grammar, falling back to a generic date
// parse. Unparseable input returns false, never an error.
func (p *Parser) Parse(s string) (time.Time, bool) {
	return ParseAt(s, p.now())
}

// ParseRelativeAt resolves the relative forms of the grammar against now.
func ParseRelativeAt(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if s == "刚刚" {
		return now, true
	}
	for _, u := range units {
		num, ok := strings.CutSuffix(s, u.suffix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil || n < 0 {
			return time.Time{}, false
		}
		return u.apply(now, n), true
	}
	return time.Time{}, false
}

// ParseAt is Parse against a fixed reading of the clock.
func ParseAt(s string, now time.Time) (time.Time, bool) {
	if t, ok := ParseRelativeAt(s, now); ok {
		return t, true
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

var defaultParser = New(nil)

// Parse resolves s against the wall clock.
func Parse(s string) (time.Time, bool) {
	return defaultParser.Parse(s)
}
