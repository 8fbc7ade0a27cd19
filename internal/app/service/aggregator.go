package service

import (
	"sort"
	"time"

	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
)

// Aggregator buckets shifts into day, week and month windows.
// Weeks begin on WeekStart; all window math runs in Location.
type Aggregator struct {
	WeekStart time.Weekday
	Location  *time.Location
}

func NewAggregator(weekStart time.Weekday, loc *time.Location) Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return Aggregator{WeekStart: weekStart, Location: loc}
}

// Sum totals every shift that the rule places inside w.
// Matches are summed in a canonical order so float totals do not depend on input order.
func Sum(records []model.Shift, w domain.Window, rule domain.Containment) domain.Totals {
	matched := make([]model.Shift, 0, len(records))
	for _, s := range records {
		if w.Contains(s, rule) {
			matched = append(matched, s)
		}
	}
	canonical(matched)

	var t domain.Totals
	for _, s := range matched {
		t.Hours += s.DurationHours()
		t.Pay += s.Pay()
		t.Count++
	}
	return t
}

func canonical(records []model.Shift) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if !a.End.Equal(b.End) {
			return a.End.Before(b.End)
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return a.HourlyRate < b.HourlyRate
	})
}

// Aggregate totals the shifts fully contained in w.
func (a Aggregator) Aggregate(records []model.Shift, w domain.Window) domain.Totals {
	return Sum(records, w, domain.FullyContained)
}

// WindowFor returns the day, week or month window holding at.
func (a Aggregator) WindowFor(g domain.Granularity, at time.Time) domain.Window {
	var start, next time.Time
	var label string
	switch g {
	case domain.Day:
		start = a.startOfDay(at)
		next = start.AddDate(0, 0, 1)
		label = start.Format("Jan 2, 2006")
	case domain.Month:
		start = a.startOfMonth(at)
		next = start.AddDate(0, 1, 0)
		label = "Month of " + start.Format("January")
	default:
		start = a.startOfWeek(at)
		next = start.AddDate(0, 0, 7)
		label = "Week of " + start.Format("Jan 2")
	}
	return domain.Window{Start: start, End: next.Add(-time.Nanosecond), Label: label}
}

// WeeklyBreakdown splits a month into weeks from the week holding its first
// day through the week holding its last. A shift lands in the week where it
// starts. Weeks without pay are left out.
func (a Aggregator) WeeklyBreakdown(records []model.Shift, month domain.Window) []domain.WeekSummary {
	weeks := make([]domain.WeekSummary, 0, 6)
	for cur := a.startOfWeek(month.Start); cur.Before(month.End); {
		next := cur.AddDate(0, 0, 7)
		wk := domain.Window{Start: cur, End: next.Add(-time.Nanosecond)}
		t := Sum(records, wk, domain.StartAnchored)
		if t.Pay > 0 {
			weeks = append(weeks, domain.WeekSummary{
				Label: cur.Format("Jan 2") + "-" + wk.End.Format("2"),
				Start: wk.Start,
				End:   wk.End,
				Hours: t.Hours,
				Pay:   t.Pay,
			})
		}
		cur = next
	}
	return weeks
}

// Report builds the summary for the g window holding at.
func (a Aggregator) Report(records []model.Shift, g domain.Granularity, at time.Time) domain.Report {
	w := a.WindowFor(g, at)
	rep := domain.Report{
		Granularity: g,
		Window:      w,
		Totals:      a.Aggregate(records, w),
		Owed:        a.Aggregate(Unpaid(records), w).Pay,
	}
	if g == domain.Month {
		rep.Weeks = a.WeeklyBreakdown(records, w)
	}
	return rep
}

// Loc is the zone window math runs in, UTC when unset.
func (a Aggregator) Loc() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

func (a Aggregator) startOfDay(t time.Time) time.Time {
	t = t.In(a.Loc())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, a.Loc())
}

func (a Aggregator) startOfWeek(t time.Time) time.Time {
	d := a.startOfDay(t)
	back := (int(d.Weekday()) - int(a.WeekStart) + 7) % 7
	return d.AddDate(0, 0, -back)
}

func (a Aggregator) startOfMonth(t time.Time) time.Time {
	t = t.In(a.Loc())
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, a.Loc())
}
