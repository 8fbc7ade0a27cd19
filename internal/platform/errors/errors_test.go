package errors_test

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	perr "shift-tracker/internal/platform/errors"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", perr.Validationf("end", "end must be after start"), http.StatusBadRequest},
		{"invalid arg", perr.InvalidArgf("bad id %q", "x"), http.StatusBadRequest},
		{"json", perr.JSONErrf("invalid JSON"), http.StatusBadRequest},
		{"not found", perr.ErrNotFound, http.StatusNotFound},
		{"unauthorized", perr.New(perr.ErrorCodeUnauthorized, "nope"), http.StatusUnauthorized},
		{"db", perr.DBWrap(stderrs.New("disk"), "insert shift"), http.StatusInternalServerError},
		{"foreign", stderrs.New("boom"), http.StatusInternalServerError},
		{"wrapped ours", fmt.Errorf("ctx: %w", perr.NotFoundf("shift 3")), http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := perr.HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus got %d want %d", got, tc.want)
			}
		})
	}
}

func TestWireFromAndField(t *testing.T) {
	err := perr.Validationf("hourlyRate", "hourlyRate must not be negative")
	w := perr.WireFrom(err)
	if w.Code != perr.ErrorCodeValidation || w.Field != "hourlyRate" {
		t.Fatalf("unexpected wire: %+v", w)
	}

	moved := perr.WithField(err, "data.hourlyRate")
	if e, _ := perr.As(moved); e.Field() != "data.hourlyRate" {
		t.Fatalf("WithField did not update field: %q", e.Field())
	}
	if e, _ := perr.As(err); e.Field() != "hourlyRate" {
		t.Fatalf("WithField mutated the original")
	}

	if w := perr.WireFrom(stderrs.New("plain")); w.Code != perr.ErrorCodeUnknown || w.Message != "plain" {
		t.Fatalf("foreign wire: %+v", w)
	}
	if w := perr.WireFrom(nil); w != (perr.Wire{}) {
		t.Fatalf("nil wire: %+v", w)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrs.New("locked")
	err := perr.DBWrap(cause, "update shifts")
	if !stderrs.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if err.Error() != "update shifts: locked" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if perr.DBWrap(nil, "noop") != nil {
		t.Fatalf("DBWrap(nil) should be nil")
	}
}
