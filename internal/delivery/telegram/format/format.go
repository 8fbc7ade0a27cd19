// Package format renders reports as chat messages.
package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"shift-tracker/internal/domain"
)

var printer = message.NewPrinter(language.English)

// Money rounds for display only: 1234.5 -> $1,234.50.
func Money(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

func Hours(v float64) string {
	return printer.Sprintf("%.2fh", v)
}

// Report renders a summary with its weekly breakdown when present.
func Report(rep domain.Report) string {
	var b strings.Builder
	b.WriteString(rep.Window.Label)
	b.WriteString("\n")
	if rep.Totals.Count == 0 {
		b.WriteString("No shifts.")
		return b.String()
	}
	b.WriteString(printer.Sprintf("%d shift(s), %s, %s\n", rep.Totals.Count, Hours(rep.Totals.Hours), Money(rep.Totals.Pay)))
	b.WriteString("Owed: " + Money(rep.Owed))
	if len(rep.Weeks) > 0 {
		b.WriteString("\n")
		for _, w := range rep.Weeks {
			b.WriteString("\n" + w.Label + ": " + Hours(w.Hours) + ", " + Money(w.Pay))
		}
	}
	return b.String()
}

func Unpaid(owed float64, count int) string {
	if count == 0 {
		return "Everything is paid."
	}
	return printer.Sprintf("Unpaid: %s across %d shift(s).", Money(owed), count)
}

// Count reads "1 shift" or "3 shifts".
func Count(n int) string {
	if n == 1 {
		return "1 shift"
	}
	return printer.Sprintf("%d shifts", n)
}
