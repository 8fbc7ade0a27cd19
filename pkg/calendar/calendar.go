// Package calendar renders an inline month grid for picking a day in Telegram.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/telebot.v3"

	"shift-tracker/internal/delivery/telegram/middleware"
)

const (
	KeyDay  = "cal_day"
	KeyPrev = "cal_prev"
	KeyNext = "cal_next"
	KeyNoop = "cal_noop"

	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// CalendarController shows the picker and routes its callbacks.
type CalendarController struct {
	WeekStart time.Weekday
	Location  *time.Location
	OnDate    func(time.Time, telebot.Context) error
}

func (cc *CalendarController) loc() *time.Location {
	if cc.Location == nil {
		return time.UTC
	}
	return cc.Location
}

// ShowCalendar sends or edits the picker for the month holding now.
func (cc *CalendarController) ShowCalendar(c telebot.Context, now time.Time) error {
	now = now.In(cc.loc())
	title, markup := BuildDayKeyboard(now.Year(), now.Month(), cc.WeekStart)
	return middleware.EditOrSend(c, title, markup)
}

// Handle serves one cal_* callback.
func (cc *CalendarController) Handle(c telebot.Context, key, payload string) error {
	switch key {
	case KeyDay:
		date, err := ParseDay(payload, cc.loc())
		if err != nil || cc.OnDate == nil {
			return c.Send("Could not read that date.")
		}
		return cc.OnDate(date, c)
	case KeyPrev, KeyNext:
		year, month, err := ParseMonth(payload)
		if err != nil {
			return c.Send("Could not read that month.")
		}
		title, markup := BuildDayKeyboard(year, month, cc.WeekStart)
		return middleware.EditOrSend(c, title, markup)
	}
	return nil
}

// BuildDayKeyboard lays the month out in week rows starting on weekStart,
// with a weekday header and month navigation below.
func BuildDayKeyboard(year int, month time.Month, weekStart time.Weekday) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	header := telebot.Row{}
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(weekStart) + i) % 7)
		header = append(header, markup.Data(wd.String()[:2], KeyNoop))
	}
	rows := []telebot.Row{header}

	week := telebot.Row{}
	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	for i := 0; i < lead; i++ {
		week = append(week, markup.Data(" ", KeyNoop))
	}
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		week = append(week, markup.Data(strconv.Itoa(d.Day()), KeyDay, d.Format(dayLayout)))
		if len(week) == 7 {
			rows = append(rows, week)
			week = telebot.Row{}
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, markup.Data(" ", KeyNoop))
		}
		rows = append(rows, week)
	}

	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)
	rows = append(rows, telebot.Row{
		markup.Data("« "+prev.Format("Jan"), KeyPrev, prev.Format(monthLayout)),
		markup.Data(next.Format("Jan")+" »", KeyNext, next.Format(monthLayout)),
	})
	markup.Inline(rows...)
	return fmt.Sprintf("Pick a day: %s %d", month, year), markup
}

// ParseDay reads a cal_day payload as midnight in loc.
func ParseDay(payload string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dayLayout, strings.TrimSpace(payload), loc)
}

// ParseMonth reads a cal_prev or cal_next payload.
func ParseMonth(payload string) (int, time.Month, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(payload))
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}
