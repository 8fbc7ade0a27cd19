package ics

import (
	"strconv"
	"strings"
	"time"

	"shift-tracker/internal/model"
	perr "shift-tracker/internal/platform/errors"
)

const (
	DefaultProdID       = "-//Nanny Shift Tracker//EN"
	DefaultCalendarName = "Nanny Shifts"
	DefaultUIDDomain    = "nanny-shift-tracker"

	ContentType = "text/calendar; charset=utf-8"
	Filename    = "nanny-shifts.ics"

	timeLayout = "20060102T150405Z"
	crlf       = "\r\n"
)

// Builder renders shifts as a published iCalendar feed.
type Builder struct {
	ProdID       string
	CalendarName string
	UIDDomain    string
	Now          func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{
		ProdID:       DefaultProdID,
		CalendarName: DefaultCalendarName,
		UIDDomain:    DefaultUIDDomain,
		Now:          time.Now,
	}
}

// Build renders records stamped with the current time.
func (b *Builder) Build(records []model.Shift) (string, error) {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return b.Render(records, now())
}

// Render renders records in input order with DTSTAMP set to now.
func (b *Builder) Render(records []model.Shift, now time.Time) (string, error) {
	for _, s := range records {
		if !s.Persisted() {
			return "", perr.Validationf("id", "shift without id cannot be published")
		}
		if !s.End.After(s.Start) {
			return "", perr.Validationf("end", "shift %d ends before it starts", s.ID)
		}
	}

	var out strings.Builder
	emit := func(line string) {
		out.WriteString(Fold(line))
		out.WriteString(crlf)
	}

	emit("BEGIN:VCALENDAR")
	emit("VERSION:2.0")
	emit("PRODID:" + b.ProdID)
	emit("CALSCALE:GREGORIAN")
	emit("METHOD:PUBLISH")
	emit("X-WR-CALNAME:" + Escape(b.CalendarName))
	emit("X-WR-TIMEZONE:UTC")
	emit("REFRESH-INTERVAL;VALUE=DURATION:PT1H")
	emit("X-PUBLISHED-TTL:PT1H")

	stamp := FormatTime(now)
	for _, s := range records {
		emit("BEGIN:VEVENT")
		emit("UID:" + b.UID(s.ID))
		emit("DTSTAMP:" + stamp)
		emit("DTSTART:" + FormatTime(s.Start))
		emit("DTEND:" + FormatTime(s.End))
		emit("SUMMARY:" + Escape(Summary(s)))
		emit("DESCRIPTION:" + Escape(Description(s)))
		emit("END:VEVENT")
	}
	emit("END:VCALENDAR")
	return out.String(), nil
}

func (b *Builder) UID(id int64) string {
	return "shift-" + strconv.FormatInt(id, 10) + "@" + b.UIDDomain
}

// FormatTime formats t as a UTC DATE-TIME, dropping fractional seconds.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Summary is the display title, suffixed with the type when one is set.
func Summary(s model.Shift) string {
	if s.Type == "" {
		return s.DisplayTitle()
	}
	return s.DisplayTitle() + " (" + s.Type + ")"
}

// Description is the unescaped multi-line event body.
func Description(s model.Shift) string {
	paid := "No"
	if s.IsPaid {
		paid = "Yes"
	}
	parts := []string{
		"Type: " + s.DisplayType(),
		"Rate: $" + formatRate(s.HourlyRate) + "/hr",
		"Paid: " + paid,
	}
	if s.Notes != "" {
		parts = append(parts, "Notes: "+s.Notes)
	}
	return strings.Join(parts, "\n")
}
