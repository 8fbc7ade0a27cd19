// Package telegram is the chat front end: summaries, the day picker and payouts.
package telegram

import (
	"context"
	"time"

	"gopkg.in/telebot.v3"

	"shift-tracker/internal/app/service"
	"shift-tracker/internal/delivery/telegram/flows"
	"shift-tracker/internal/delivery/telegram/format"
	"shift-tracker/internal/delivery/telegram/middleware"
	"shift-tracker/internal/delivery/telegram/router"
	"shift-tracker/internal/domain"
	"shift-tracker/internal/platform/logger"
	"shift-tracker/pkg/calendar"
)

const (
	keyPayoutAll = "payout_all"
	keyPickDay   = "report_pick_day"
)

var (
	btnWeek   = telebot.Btn{Text: "📅 This week"}
	btnMonth  = telebot.Btn{Text: "🗓 This month"}
	btnUnpaid = telebot.Btn{Text: "💰 Unpaid"}
	btnPayout = telebot.Btn{Text: "💸 Pay out"}
)

type Handler struct {
	Bot         *telebot.Bot
	Shifts      *service.ShiftServiceImpl
	Ledger      *service.Ledger
	Subscribers *service.SubscriberService
	Agg         service.Aggregator
	Calendar    *calendar.CalendarController
	Router      *router.CallbackRouter
	// Allowed chats; empty admits everyone.
	Chats []int64
	Ctx   context.Context
	Now   func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) ctx() context.Context {
	if h.Ctx != nil {
		return h.Ctx
	}
	return context.Background()
}

func (h *Handler) Register() {
	h.Bot.Use(middleware.Log(), middleware.Whitelist(h.Chats), h.withContext)

	if h.Router == nil {
		h.Router = router.New()
	}
	if h.Calendar != nil {
		h.Calendar.OnDate = h.dayReport
		h.Router.DelegatePrefix = "cal_"
		h.Router.Delegate = h.Calendar.Handle
	}
	h.Router.Register(keyPayoutAll, h.payoutAll)
	h.Router.Register(keyPickDay, func(c telebot.Context, _ string) error {
		if h.Calendar == nil {
			return nil
		}
		return h.Calendar.ShowCalendar(c, h.now())
	})
	flows.RegisterReports(h.Router, h.Shifts, h.Agg, h.now)
	h.Router.Attach(h.Bot)

	h.Bot.Handle("/start", h.handleStart)
	h.Bot.Handle("/stop", h.handleStop)
	h.Bot.Handle(telebot.OnText, h.handleText)
}

func (h *Handler) withContext(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		c.Set(flows.ContextKey, h.ctx())
		return next(c)
	}
}

func (h *Handler) handleStart(c telebot.Context) error {
	sub := domain.Subscriber{ChatID: c.Chat().ID}
	if s := c.Sender(); s != nil {
		sub.Name = s.FirstName
	}
	if err := h.Subscribers.Subscribe(h.ctx(), sub); err != nil {
		logger.Named("telegram").Error().Err(err).Int64("chat_id", sub.ChatID).Msg("subscribe")
		return c.Send("Could not subscribe this chat, try again later.")
	}
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text(btnWeek.Text), markup.Text(btnMonth.Text)),
		markup.Row(markup.Text(btnUnpaid.Text), markup.Text(btnPayout.Text)),
	)
	return c.Send("Welcome! This chat now gets pay reminders. Send /stop to opt out.", markup)
}

func (h *Handler) handleStop(c telebot.Context) error {
	if err := h.Subscribers.Unsubscribe(h.ctx(), c.Chat().ID); err != nil {
		logger.Named("telegram").Warn().Err(err).Int64("chat_id", c.Chat().ID).Msg("unsubscribe")
	}
	return c.Send("Reminders stopped.", &telebot.ReplyMarkup{RemoveKeyboard: true})
}

func (h *Handler) handleText(c telebot.Context) error {
	switch c.Text() {
	case btnWeek.Text:
		return h.sendReport(c, domain.Week, h.now())
	case btnMonth.Text:
		if err := h.sendReport(c, domain.Month, h.now()); err != nil {
			return err
		}
		markup := &telebot.ReplyMarkup{}
		markup.Inline(markup.Row(
			markup.Data("Other month", flows.KeyOtherMonth),
			markup.Data("A single day", keyPickDay),
		))
		return c.Send("More reports:", markup)
	case btnUnpaid.Text:
		all, err := h.Shifts.GetShifts(h.ctx())
		if err != nil {
			return h.failed(c, err, "load shifts")
		}
		return c.Send(format.Unpaid(service.UnpaidTotal(all), len(service.Unpaid(all))))
	case btnPayout.Text:
		markup := &telebot.ReplyMarkup{}
		markup.Inline(markup.Row(markup.Data("Pay everything", keyPayoutAll)))
		return c.Send("Mark every unpaid shift as paid?", markup)
	}
	return nil
}

func (h *Handler) sendReport(c telebot.Context, g domain.Granularity, at time.Time) error {
	all, err := h.Shifts.GetShifts(h.ctx())
	if err != nil {
		return h.failed(c, err, "load shifts")
	}
	return middleware.EditOrSend(c, format.Report(h.Agg.Report(all, g, at)), nil)
}

func (h *Handler) dayReport(date time.Time, c telebot.Context) error {
	return h.sendReport(c, domain.Day, date)
}

func (h *Handler) payoutAll(c telebot.Context, _ string) error {
	n, err := h.Ledger.MarkAllPaid(h.ctx())
	if err != nil {
		return h.failed(c, err, "mark all paid")
	}
	logger.Named("telegram").Info().Int("shifts", n).Int64("chat_id", c.Chat().ID).Msg("paid out")
	if n == 0 {
		return middleware.EditOrSend(c, "Nothing to pay.", nil)
	}
	return middleware.EditOrSend(c, format.Unpaid(0, 0)+" Marked "+format.Count(n)+" as paid.", nil)
}

func (h *Handler) failed(c telebot.Context, err error, op string) error {
	logger.Named("telegram").Error().Err(err).Str("op", op).Msg("telegram handler")
	return c.Send("Something went wrong, try again later.")
}
