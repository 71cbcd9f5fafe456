package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

var ErrUnparseableDate = errors.New("unrecognised date")

var parser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	return w
}()

// ParseEventTime combines a date and optional time of day into one timestamp.
//
// Accepted forms: "2006-01-02" with "15:04" (or "15:04:05"), a single RFC3339 value,
// or an English phrase such as "next friday at 5pm" resolved relative to now.
func ParseEventTime(date, clock string, now time.Time) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, ErrUnparseableDate
	}

	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t, nil
	}

	if d, err := time.ParseInLocation("2006-01-02", date, now.Location()); err == nil {
		if clock == "" {
			return d, nil
		}
		for _, layout := range []string{"15:04", "15:04:05"} {
			if c, err := time.Parse(layout, clock); err == nil {
				return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, now.Location()), nil
			}
		}
		return time.Time{}, ErrUnparseableDate
	}

	phrase := strings.ToLower(date)
	if clock != "" {
		phrase += " at " + strings.ToLower(clock)
	}
	r, err := parser.Parse(phrase, now)
	if err != nil {
		return time.Time{}, err
	}
	if r == nil {
		return time.Time{}, ErrUnparseableDate
	}
	return r.Time, nil
}
