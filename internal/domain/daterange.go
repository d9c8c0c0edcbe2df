package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	// MaxSpanDays is the longest span the NBP API accepts in one query.
	MaxSpanDays = 93
)

type DateRange struct {
	Start time.Time
	End   time.Time
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidRange, s)
	}
	return t, nil
}

// NewDateRange validates start <= end and a span of at most MaxSpanDays.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := DateOf(start), DateOf(end)
	if s.After(e) {
		return DateRange{}, fmt.Errorf("%w: start date cannot be after end date", ErrInvalidRange)
	}
	if e.Sub(s) > MaxSpanDays*24*time.Hour {
		return DateRange{}, fmt.Errorf("%w: maximum date range is %d calendar days", ErrInvalidRange, MaxSpanDays)
	}
	return DateRange{Start: s, End: e}, nil
}

// ParseDateRange parses two YYYY-MM-DD dates into a validated range.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(s, e)
}

// NotAfter rejects a range that ends later than latest.
func (r DateRange) NotAfter(latest time.Time) error {
	if r.End.After(DateOf(latest)) {
		return fmt.Errorf("%w: neither date can be later than %s", ErrInvalidRange, DateOf(latest).Format(DateLayout))
	}
	return nil
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// IsBusinessDay reports whether t falls on Monday through Friday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// BusinessDays lists every Monday..Friday in the range, both ends included.
func (r DateRange) BusinessDays() []time.Time {
	var out []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			out = append(out, d)
		}
	}
	return out
}
