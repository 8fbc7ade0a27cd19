package model

import (
	"math"
	"time"

	perr "shift-tracker/internal/platform/errors"
)

const (
	DefaultTitle = "Shift"
	DefaultType  = "WORK"
)

// Shift is one recorded work interval. ID is zero until the store assigns one.
type Shift struct {
	ID         int64     `json:"id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Title      string    `json:"title,omitempty"`
	Type       string    `json:"type,omitempty"`
	HourlyRate float64   `json:"hourlyRate"`
	IsPaid     bool      `json:"isPaid"`
	Notes      string    `json:"notes,omitempty"`
}

func (s Shift) Persisted() bool { return s.ID > 0 }

// DurationHours is (End-Start) in hours at double precision.
func (s Shift) DurationHours() float64 {
	return s.End.Sub(s.Start).Hours()
}

// Pay is DurationHours * HourlyRate, unrounded.
func (s Shift) Pay() float64 {
	return s.DurationHours() * s.HourlyRate
}

func (s Shift) DisplayTitle() string {
	if s.Title == "" {
		return DefaultTitle
	}
	return s.Title
}

func (s Shift) DisplayType() string {
	if s.Type == "" {
		return DefaultType
	}
	return s.Type
}

// Validate checks the interval and rate invariants.
func (s Shift) Validate() error {
	if s.Start.IsZero() {
		return perr.Validationf("start", "start is required")
	}
	if s.End.IsZero() {
		return perr.Validationf("end", "end is required")
	}
	if !s.End.After(s.Start) {
		return perr.Validationf("end", "end must be after start")
	}
	return ValidateRate(s.HourlyRate)
}

func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return perr.Validationf("hourlyRate", "hourlyRate must be a non-negative number")
	}
	return nil
}
