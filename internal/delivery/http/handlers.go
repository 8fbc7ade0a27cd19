package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"shift-tracker/internal/app/service"
	"shift-tracker/internal/domain"
	"shift-tracker/internal/ics"
	perr "shift-tracker/internal/platform/errors"
	"shift-tracker/internal/report"
)

type updateShiftRequest struct {
	// ID is accepted so clients can send the record back whole; the path wins.
	ID *int64 `json:"id,omitempty"`
	domain.ShiftPatch
}

type bulkRequest struct {
	IDs  json.RawMessage   `json:"ids"`
	Data domain.ShiftPatch `json:"data"`
}

type configBody struct {
	HourlyRate *float64 `json:"hourlyRate" validate:"required,gte=0"`
}

type summaryResponse struct {
	domain.Report
	UnpaidTotal float64 `json:"unpaidTotal"`
}

func (a *API) listShifts(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	shifts, err := a.Shifts.GetShifts(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondOK(w, r, shifts)
}

func (a *API) createShift(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := ParseJSON[service.NewShift](r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	rate, err := a.Settings.HourlyRate(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	shift, err := a.Shifts.AddShift(r.Context(), in, rate)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondCreated(w, r, shift)
}

func (a *API) updateShift(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	in, err := ParseJSON[updateShiftRequest](r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	shift, err := a.Shifts.UpdateShift(r.Context(), id, in.ShiftPatch)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondOK(w, r, shift)
}

func (a *API) deleteShift(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	if err := a.Shifts.DeleteShift(r.Context(), id); err != nil {
		RespondError(w, r, err)
		return
	}
	RespondOK(w, r, map[string]bool{"success": true})
}

func (a *API) bulkUpdate(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := ParseJSON[bulkRequest](r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	ids, err := parseIDs(in.IDs)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	n, err := a.Ledger.Apply(r.Context(), ids, in.Data)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondOK(w, r, map[string]int{"updated": n})
}

// parseIDs accepts only a JSON array of integers.
func parseIDs(raw json.RawMessage) ([]int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, perr.Validationf("ids", "ids must be an array")
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, perr.Validationf("ids", "ids must be an array of integers")
	}
	return ids, nil
}

func (a *API) getConfig(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	rate, err := a.Settings.HourlyRate(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondOK(w, r, configBody{HourlyRate: &rate})
}

func (a *API) setConfig(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := ParseJSON[configBody](r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	if err := a.Settings.SetHourlyRate(r.Context(), *in.HourlyRate); err != nil {
		RespondError(w, r, err)
		return
	}
	RespondOK(w, r, in)
}

func (a *API) summary(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	g, err := domain.ParseGranularity(r.URL.Query().Get("view"))
	if err != nil {
		RespondError(w, r, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, err.Error()), "view"))
		return
	}
	at, err := a.dateParam(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	shifts, err := a.Shifts.GetShifts(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondOK(w, r, summaryResponse{
		Report:      a.Agg.Report(shifts, g, at),
		UnpaidTotal: service.UnpaidTotal(shifts),
	})
}

func (a *API) exportWorkbook(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	at, err := a.dateParam(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	shifts, err := a.Shifts.GetShifts(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	b, err := service.Run(r.Context(), a.Async, func() ([]byte, error) {
		return report.MonthWorkbook(shifts, a.Agg, at)
	})
	if err != nil {
		RespondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(a.Agg.WindowFor(domain.Month, at))+`"`)
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = w.Write(b)
}

// feed serves the calendar. A denied request learns nothing about the data.
func (a *API) feed(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if !ics.Authorize(token, a.FeedToken) {
		stdhttp.Error(w, "Unauthorized", stdhttp.StatusUnauthorized)
		return
	}

	shifts, err := a.Shifts.GetShifts(r.Context())
	if err != nil {
		requestLogger(r).Error().Err(err).Msg("load shifts for feed")
		stdhttp.Error(w, "Internal Server Error", stdhttp.StatusInternalServerError)
		return
	}
	doc, err := service.Run(r.Context(), a.Async, func() (string, error) {
		return a.Feed.Build(shifts)
	})
	if err != nil {
		requestLogger(r).Error().Err(err).Msg("build feed")
		stdhttp.Error(w, "Internal Server Error", stdhttp.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", ics.ContentType)
	h.Set("Content-Disposition", `attachment; filename="`+ics.Filename+`"`)
	h.Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func pathID(r *stdhttp.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, perr.WithField(perr.InvalidArgf("invalid shift id %q", raw), "id")
	}
	return id, nil
}

// dateParam reads ?date=YYYY-MM-DD in the aggregator's location, defaulting to now.
func (a *API) dateParam(r *stdhttp.Request) (time.Time, error) {
	loc := a.Agg.Loc()
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return a.now().In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return time.Time{}, perr.WithField(perr.InvalidArgf("date must be YYYY-MM-DD"), "date")
	}
	return t, nil
}
