package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"shift-tracker/internal/app/service"
	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
	perr "shift-tracker/internal/platform/errors"
)

const (
	ShiftsSheet = "Shifts"
	WeeksSheet  = "Weeks"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var shiftHeader = []any{"Date", "Start", "End", "Hours", "Rate", "Pay", "Paid", "Notes"}

// Filename names the workbook for the month window.
func Filename(month domain.Window) string {
	return "payroll-" + month.Start.Format("2006-01") + ".xlsx"
}

// MonthWorkbook renders the payroll of the month holding at: every shift fully
// inside the month with a totals row, and the weekly breakdown on a second sheet.
func MonthWorkbook(records []model.Shift, agg service.Aggregator, at time.Time) ([]byte, error) {
	month := agg.WindowFor(domain.Month, at)
	loc := month.Start.Location()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ShiftsSheet); err != nil {
		return nil, wrap(err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0EBF5"}, Pattern: 1},
	})
	if err != nil {
		return nil, wrap(err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, wrap(err)
	}

	if err := f.SetSheetRow(ShiftsSheet, "A1", &shiftHeader); err != nil {
		return nil, wrap(err)
	}
	_ = f.SetCellStyle(ShiftsSheet, "A1", "H1", headerStyle)

	row := 2
	for _, s := range records {
		if !month.Contains(s, domain.FullyContained) {
			continue
		}
		paid := "No"
		if s.IsPaid {
			paid = "Yes"
		}
		start, end := s.Start.In(loc), s.End.In(loc)
		values := []any{
			start.Format("2006-01-02"),
			start.Format("15:04"),
			end.Format("15:04"),
			s.DurationHours(),
			s.HourlyRate,
			s.Pay(),
			paid,
			s.Notes,
		}
		if err := f.SetSheetRow(ShiftsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, wrap(err)
		}
		row++
	}

	totals := agg.Aggregate(records, month)
	totalRow := []any{"Total", nil, nil, totals.Hours, nil, totals.Pay}
	if err := f.SetSheetRow(ShiftsSheet, fmt.Sprintf("A%d", row), &totalRow); err != nil {
		return nil, wrap(err)
	}
	_ = f.SetCellStyle(ShiftsSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), headerStyle)
	_ = f.SetCellStyle(ShiftsSheet, "E2", fmt.Sprintf("F%d", row), moneyStyle)
	_ = f.SetColWidth(ShiftsSheet, "H", "H", 40)

	if _, err := f.NewSheet(WeeksSheet); err != nil {
		return nil, wrap(err)
	}
	weekHeader := []any{"Week", "Hours", "Pay"}
	if err := f.SetSheetRow(WeeksSheet, "A1", &weekHeader); err != nil {
		return nil, wrap(err)
	}
	_ = f.SetCellStyle(WeeksSheet, "A1", "C1", headerStyle)
	for i, wk := range agg.WeeklyBreakdown(records, month) {
		values := []any{wk.Label, wk.Hours, wk.Pay}
		if err := f.SetSheetRow(WeeksSheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return nil, wrap(err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, wrap(err)
	}
	return buf.Bytes(), nil
}

func wrap(err error) error {
	return perr.Wrap(err, perr.ErrorCodeUnknown, "build workbook")
}
