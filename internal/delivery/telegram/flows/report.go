package flows

import (
	"strconv"
	"time"

	"gopkg.in/telebot.v3"

	"shift-tracker/internal/app/service"
	"shift-tracker/internal/delivery/telegram/format"
	"shift-tracker/internal/delivery/telegram/keyboards"
	"shift-tracker/internal/delivery/telegram/middleware"
	"shift-tracker/internal/delivery/telegram/router"
	"shift-tracker/internal/domain"
	"shift-tracker/internal/platform/logger"
)

const KeyOtherMonth = "report_other_month"

// RegisterReports wires the month picker to monthly reports with their weekly breakdown.
func RegisterReports(r *router.CallbackRouter, shifts *service.ShiftServiceImpl, agg service.Aggregator, now func() time.Time) {
	showYear := func(c telebot.Context, year int) error {
		title, markup := keyboards.BuildMonthKeyboard(year)
		return middleware.EditOrSend(c, title, markup)
	}

	r.Register(KeyOtherMonth, func(c telebot.Context, _ string) error {
		return showYear(c, agg.WindowFor(domain.Month, now()).Start.Year())
	})
	r.Register(keyboards.KeyMonthPrev, func(c telebot.Context, payload string) error {
		y, err := strconv.Atoi(payload)
		if err != nil {
			return nil
		}
		return showYear(c, y-1)
	})
	r.Register(keyboards.KeyMonthNext, func(c telebot.Context, payload string) error {
		y, err := strconv.Atoi(payload)
		if err != nil {
			return nil
		}
		return showYear(c, y+1)
	})

	r.Register(keyboards.KeyPickMonth, func(c telebot.Context, payload string) error {
		at, err := time.ParseInLocation("2006-01", payload, agg.Loc())
		if err != nil {
			return nil
		}
		all, err := shifts.GetShifts(ctxOf(c))
		if err != nil {
			logger.Named("telegram").Error().Err(err).Msg("load shifts for month report")
			return c.Send("Could not load shifts, try again later.")
		}
		return middleware.EditOrSend(c, format.Report(agg.Report(all, domain.Month, at)), nil)
	})
}
