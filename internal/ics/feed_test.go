package ics_test

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"shift-tracker/internal/ics"
	"shift-tracker/internal/model"
	perr "shift-tracker/internal/platform/errors"
)

var stamp = time.Date(2024, 1, 5, 12, 30, 45, 123456789, time.UTC)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRenderNotesScenario(t *testing.T) {
	records := []model.Shift{{
		ID:         7,
		Start:      mustTime("2024-01-01T09:00:00Z"),
		End:        mustTime("2024-01-01T17:00:00Z"),
		HourlyRate: 20,
		Notes:      "Late, bring snacks;",
	}}
	doc, err := ics.NewBuilder().Render(records, stamp)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n") {
		t.Fatalf("bad start: %q", doc[:30])
	}
	if !strings.HasSuffix(doc, "END:VCALENDAR\r\n") {
		t.Fatalf("bad end")
	}
	unfolded := ics.Unfold(doc)
	for _, want := range []string{
		"UID:shift-7@nanny-shift-tracker\r\n",
		"DTSTAMP:20240105T123045Z\r\n",
		"DTSTART:20240101T090000Z\r\n",
		"DTEND:20240101T170000Z\r\n",
		"SUMMARY:Shift\r\n",
		`DESCRIPTION:Type: WORK\nRate: $20.00/hr\nPaid: No\nNotes: Late\, bring snacks\;` + "\r\n",
	} {
		if !strings.Contains(unfolded, want) {
			t.Fatalf("missing %q in\n%s", want, unfolded)
		}
	}
}

func TestRenderHeaderAndLineEndings(t *testing.T) {
	doc, err := ics.NewBuilder().Render(nil, stamp)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Nanny Shift Tracker//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:Nanny Shifts",
		"X-WR-TIMEZONE:UTC",
		"REFRESH-INTERVAL;VALUE=DURATION:PT1H",
		"X-PUBLISHED-TTL:PT1H",
		"END:VCALENDAR",
	}, "\r\n") + "\r\n"
	if doc != want {
		t.Fatalf("empty calendar:\n got %q\nwant %q", doc, want)
	}
	if strings.Contains(strings.ReplaceAll(doc, "\r\n", ""), "\n") {
		t.Fatalf("bare LF in output")
	}
}

func TestSummaryAndDescription(t *testing.T) {
	tests := []struct {
		name    string
		shift   model.Shift
		summary string
		desc    string
	}{
		{
			name:    "defaults",
			shift:   model.Shift{HourlyRate: 20},
			summary: "Shift",
			desc:    "Type: WORK\nRate: $20.00/hr\nPaid: No",
		},
		{
			name:    "typed and paid",
			shift:   model.Shift{Title: "Nanny Shift", Type: "OVERTIME", HourlyRate: 27.5, IsPaid: true},
			summary: "Nanny Shift (OVERTIME)",
			desc:    "Type: OVERTIME\nRate: $27.50/hr\nPaid: Yes",
		},
		{
			name:    "three decimals kept",
			shift:   model.Shift{HourlyRate: 18.125, Notes: "pickup"},
			summary: "Shift",
			desc:    "Type: WORK\nRate: $18.125/hr\nPaid: No\nNotes: pickup",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ics.Summary(tc.shift); got != tc.summary {
				t.Fatalf("Summary got %q want %q", got, tc.summary)
			}
			if got := ics.Description(tc.shift); got != tc.desc {
				t.Fatalf("Description got %q want %q", got, tc.desc)
			}
		})
	}
}

func TestRenderRejectsMalformedRecords(t *testing.T) {
	start := mustTime("2024-01-01T09:00:00Z")
	tests := []struct {
		name  string
		shift model.Shift
		field string
	}{
		{"unpersisted", model.Shift{Start: start, End: start.Add(time.Hour)}, "id"},
		{"zero length", model.Shift{ID: 1, Start: start, End: start}, "end"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ics.NewBuilder().Render([]model.Shift{tc.shift}, stamp)
			e, ok := perr.As(err)
			if !ok || e.Field() != tc.field {
				t.Fatalf("got %v want validation error on %q", err, tc.field)
			}
		})
	}
}

func TestBuildUsesClock(t *testing.T) {
	b := ics.NewBuilder()
	b.Now = func() time.Time { return stamp }
	doc, err := b.Build([]model.Shift{{ID: 1, Start: stamp, End: stamp.Add(time.Hour)}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(doc, "DTSTAMP:20240105T123045Z\r\n") {
		t.Fatalf("clock not used:\n%s", doc)
	}
}

func TestFeedParsesWithThirdPartyClient(t *testing.T) {
	records := []model.Shift{
		{
			ID:         1,
			Start:      mustTime("2024-01-01T09:00:00Z"),
			End:        mustTime("2024-01-01T17:00:00Z"),
			Title:      "Nanny Shift",
			Type:       "WORK",
			HourlyRate: 20,
		},
		{
			ID:         2,
			Start:      mustTime("2024-01-01T23:00:00-05:00"),
			End:        mustTime("2024-01-02T02:00:00-05:00"),
			HourlyRate: 22.5,
			Notes:      strings.Repeat("Long note with commas, semicolons; and unicode ☕. ", 6),
		},
	}
	doc, err := ics.NewBuilder().Render(records, stamp)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	cal, err := ical.ParseCalendar(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}
	events := cal.Events()
	if len(events) != len(records) {
		t.Fatalf("got %d events want %d", len(events), len(records))
	}
	for i, ev := range events {
		if got, want := ev.Id(), ics.NewBuilder().UID(records[i].ID); got != want {
			t.Fatalf("event %d uid %q want %q", i, got, want)
		}
		start, err := ev.GetStartAt()
		if err != nil {
			t.Fatalf("event %d start: %v", i, err)
		}
		if !start.Equal(records[i].Start) {
			t.Fatalf("event %d start %v want %v", i, start, records[i].Start)
		}
		end, err := ev.GetEndAt()
		if err != nil {
			t.Fatalf("event %d end: %v", i, err)
		}
		if !end.Equal(records[i].End) {
			t.Fatalf("event %d end %v want %v", i, end, records[i].End)
		}
	}
}
