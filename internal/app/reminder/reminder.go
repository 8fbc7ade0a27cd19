// Package reminder periodically tells subscribed chats how much pay is owed.
package reminder

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"shift-tracker/internal/app/service"
	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
	perr "shift-tracker/internal/platform/errors"
	"shift-tracker/internal/platform/logger"
)

type ShiftLister interface {
	ListShifts(ctx context.Context) ([]model.Shift, error)
}

type SubscriberLister interface {
	ListSubscribers(ctx context.Context) ([]domain.Subscriber, error)
}

// Notifier delivers a text to one chat.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

type Reminder struct {
	Shifts      ShiftLister
	Subscribers SubscriberLister
	Notifier    Notifier
	// Text renders the message; DefaultText when nil.
	Text func(owed float64, unpaid int) string

	cron *cron.Cron
}

func New(shifts ShiftLister, subs SubscriberLister, n Notifier, loc *time.Location) *Reminder {
	if loc == nil {
		loc = time.UTC
	}
	return &Reminder{
		Shifts:      shifts,
		Subscribers: subs,
		Notifier:    n,
		cron:        cron.New(cron.WithLocation(loc)),
	}
}

var printer = message.NewPrinter(language.English)

func DefaultText(owed float64, unpaid int) string {
	return printer.Sprintf("Reminder: $%.2f is owed for %d unpaid shift(s).", owed, unpaid)
}

// Start schedules RunOnce on schedule, a standard five-field cron expression.
func (r *Reminder) Start(schedule string) error {
	log := logger.Named("reminder")
	_, err := r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if n, err := r.RunOnce(ctx); err != nil {
			log.Error().Err(err).Msg("reminder run failed")
		} else {
			log.Debug().Int("notified", n).Msg("reminder run")
		}
	})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "invalid reminder schedule %q", schedule)
	}
	r.cron.Start()
	log.Info().Str("schedule", schedule).Msg("reminder scheduled")
	return nil
}

// Stop halts the schedule and waits for a running job.
func (r *Reminder) Stop() {
	<-r.cron.Stop().Done()
}

// RunOnce sends the owed total to every subscriber and returns how many were
// notified. Nothing is sent when nothing is owed. A failed delivery is logged
// and does not stop the rest.
func (r *Reminder) RunOnce(ctx context.Context) (int, error) {
	shifts, err := r.Shifts.ListShifts(ctx)
	if err != nil {
		return 0, err
	}
	owed := service.UnpaidTotal(shifts)
	if owed <= 0 {
		return 0, nil
	}
	subs, err := r.Subscribers.ListSubscribers(ctx)
	if err != nil {
		return 0, err
	}

	text := r.Text
	if text == nil {
		text = DefaultText
	}
	msg := text(owed, len(service.Unpaid(shifts)))

	sent := 0
	for _, s := range subs {
		if err := r.Notifier.Notify(ctx, s.ChatID, msg); err != nil {
			logger.C(ctx).Warn().Err(err).Int64("chat_id", s.ChatID).Msg("reminder not delivered")
			continue
		}
		sent++
	}
	return sent, nil
}
