package calendar_test

import (
	"errors"
	"testing"
	"time"

	"gopkg.in/telebot.v3"

	"shift-tracker/pkg/calendar"
)

func TestBuildDayKeyboard(t *testing.T) {
	// February 2024 starts on a Thursday and has 29 days
	title, markup := calendar.BuildDayKeyboard(2024, time.February, time.Sunday)
	if title != "Pick a day: February 2024" {
		t.Fatalf("title %q", title)
	}
	rows := markup.InlineKeyboard
	// header, five weeks, navigation
	if len(rows) != 7 {
		t.Fatalf("got %d rows want 7", len(rows))
	}
	if rows[0][0].Text != "Su" || rows[0][6].Text != "Sa" {
		t.Fatalf("header %q..%q", rows[0][0].Text, rows[0][6].Text)
	}
	for i, row := range rows[1:6] {
		if len(row) != 7 {
			t.Fatalf("week %d has %d cells", i, len(row))
		}
	}
	if rows[1][3].Unique != calendar.KeyNoop || rows[1][4].Data != "2024-02-01" {
		t.Fatalf("first week %+v", rows[1])
	}

	days := 0
	for _, row := range rows[1:6] {
		for _, b := range row {
			if b.Unique == calendar.KeyDay {
				days++
			}
		}
	}
	if days != 29 {
		t.Fatalf("got %d day buttons want 29", days)
	}

	nav := rows[6]
	if nav[0].Unique != calendar.KeyPrev || nav[0].Data != "2024-01" || nav[1].Data != "2024-03" {
		t.Fatalf("navigation %+v", nav)
	}
}

func TestBuildDayKeyboardMondayStart(t *testing.T) {
	_, markup := calendar.BuildDayKeyboard(2024, time.January, time.Monday)
	rows := markup.InlineKeyboard
	if rows[0][0].Text != "Mo" {
		t.Fatalf("header starts with %q", rows[0][0].Text)
	}
	// January 1 2024 is a Monday
	if rows[1][0].Data != "2024-01-01" {
		t.Fatalf("first cell %+v", rows[1][0])
	}
	last := rows[len(rows)-1]
	if last[0].Data != "2023-12" || last[1].Data != "2024-02" {
		t.Fatalf("year wrap %+v", last)
	}
}

func TestParse(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	d, err := calendar.ParseDay("2024-03-09", loc)
	if err != nil || !d.Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, loc)) {
		t.Fatalf("ParseDay got %v, %v", d, err)
	}
	if _, err := calendar.ParseDay("9-3-2024", loc); err == nil {
		t.Fatalf("expected error for old payload format")
	}
	y, m, err := calendar.ParseMonth("2023-12")
	if err != nil || y != 2023 || m != time.December {
		t.Fatalf("ParseMonth got %d %v %v", y, m, err)
	}
}

type fakeContext struct {
	telebot.Context
	callback bool
	editErr  error
	edited   []string
	sent     []string
}

func (f *fakeContext) Callback() *telebot.Callback {
	if f.callback {
		return &telebot.Callback{}
	}
	return nil
}

func (f *fakeContext) Edit(what interface{}, _ ...interface{}) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.edited = append(f.edited, what.(string))
	return nil
}

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what.(string))
	return nil
}

func TestHandleNavigation(t *testing.T) {
	cc := &calendar.CalendarController{}

	c := &fakeContext{callback: true}
	if err := cc.Handle(c, calendar.KeyNext, "2024-02"); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(c.edited) != 1 || c.edited[0] != "Pick a day: February 2024" || len(c.sent) != 0 {
		t.Fatalf("edited %q sent %q", c.edited, c.sent)
	}

	// a failed edit falls back to a new message
	c = &fakeContext{callback: true, editErr: errors.New("message is not modified")}
	if err := cc.Handle(c, calendar.KeyPrev, "2023-12"); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(c.sent) != 1 || c.sent[0] != "Pick a day: December 2023" {
		t.Fatalf("sent %q", c.sent)
	}
}

func TestHandleDay(t *testing.T) {
	var picked time.Time
	cc := &calendar.CalendarController{OnDate: func(d time.Time, _ telebot.Context) error {
		picked = d
		return nil
	}}
	if err := cc.Handle(&fakeContext{}, calendar.KeyDay, "2024-02-29"); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !picked.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("picked %v", picked)
	}

	c := &fakeContext{}
	if err := cc.Handle(c, calendar.KeyDay, "2024-02-30"); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(c.sent) != 1 || c.sent[0] != "Could not read that date." {
		t.Fatalf("sent %q", c.sent)
	}
}
