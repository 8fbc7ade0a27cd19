package domain

import (
	"fmt"
	"strings"
	"time"

	"shift-tracker/internal/model"
)

// Window is a closed interval [Start, End] used to bucket shifts for one report.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Containment decides whether a shift belongs to a window.
type Containment int

const (
	// FullyContained requires the whole shift inside the window. A shift that
	// crosses either boundary counts nowhere.
	FullyContained Containment = iota
	// StartAnchored assigns a shift to the window holding its start.
	StartAnchored
)

func (w Window) Contains(s model.Shift, rule Containment) bool {
	if s.Start.Before(w.Start) {
		return false
	}
	switch rule {
	case StartAnchored:
		return !s.Start.After(w.End)
	default:
		return !s.End.After(w.End)
	}
}

type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case Day, Week, Month:
		return g, nil
	case "":
		return Week, nil
	default:
		return "", fmt.Errorf("unknown view %q", s)
	}
}

// Totals is the aggregate of the shifts counted in a window.
type Totals struct {
	Hours float64 `json:"hours"`
	Pay   float64 `json:"pay"`
	Count int     `json:"count"`
}

// WeekSummary is one row of a month's weekly breakdown.
type WeekSummary struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Hours float64   `json:"hours"`
	Pay   float64   `json:"pay"`
}

// Report is the pay summary for one view.
type Report struct {
	Granularity Granularity   `json:"view"`
	Window      Window        `json:"window"`
	Totals      Totals        `json:"totals"`
	Owed        float64       `json:"owed"`
	Weeks       []WeekSummary `json:"weeks,omitempty"`
}
