package keyboards

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/telebot.v3"
)

const (
	KeyPickMonth = "pick_month"
	KeyMonthPrev = "month_prev"
	KeyMonthNext = "month_next"
)

// BuildMonthKeyboard shows the twelve months of year in a 3x4 grid with
// year navigation. Month payloads are YYYY-MM.
func BuildMonthKeyboard(year int) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	rows := []telebot.Row{}
	for i := 0; i < 12; i += 3 {
		row := telebot.Row{}
		for m := i + 1; m <= i+3; m++ {
			name := time.Month(m).String()[:3]
			row = append(row, markup.Data(name, KeyPickMonth, fmt.Sprintf("%04d-%02d", year, m)))
		}
		rows = append(rows, row)
	}

	prev := markup.Data("← "+strconv.Itoa(year-1), KeyMonthPrev, strconv.Itoa(year))
	next := markup.Data(strconv.Itoa(year+1)+" →", KeyMonthNext, strconv.Itoa(year))
	rows = append(rows, markup.Row(prev, next))

	markup.Inline(rows...)
	return fmt.Sprintf("Pick a month: %d", year), markup
}
