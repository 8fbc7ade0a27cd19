package router_test

import (
	"testing"

	"gopkg.in/telebot.v3"

	"shift-tracker/internal/delivery/telegram/router"
)

// fakeContext overrides only what Dispatch touches.
type fakeContext struct {
	telebot.Context
	data      string
	responded bool
}

func (f *fakeContext) Data() string { return f.data }

func (f *fakeContext) Respond(...*telebot.CallbackResponse) error {
	f.responded = true
	return nil
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw, key, payload string
	}{
		{"\fpick_month|2024-01", "pick_month", "2024-01"},
		{"payout_all", "payout_all", ""},
		{"\fcal_day|2024-01-02", "cal_day", "2024-01-02"},
		{"k|a|b", "k", "a|b"},
		{"k|", "k", ""},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			key, payload := router.Parse(tc.raw)
			if key != tc.key || payload != tc.payload {
				t.Fatalf("got (%q, %q) want (%q, %q)", key, payload, tc.key, tc.payload)
			}
		})
	}
}

func TestDispatch(t *testing.T) {
	r := router.New()
	var got string
	r.Register("pick_month", func(_ telebot.Context, payload string) error {
		got = "month:" + payload
		return nil
	})
	r.DelegatePrefix = "cal_"
	r.Delegate = func(_ telebot.Context, key, payload string) error {
		got = key + ":" + payload
		return nil
	}

	tests := []struct {
		data  string
		found bool
		want  string
	}{
		{"\fpick_month|2024-02", true, "month:2024-02"},
		{"\fcal_next|2024-03", true, "cal_next:2024-03"},
		{"\funknown|x", false, ""},
	}
	for _, tc := range tests {
		got = ""
		c := &fakeContext{data: tc.data}
		found, err := r.Dispatch(c)
		if err != nil || found != tc.found || got != tc.want {
			t.Fatalf("%q: found=%v err=%v got=%q", tc.data, found, err, got)
		}
		if !c.responded {
			t.Fatalf("%q: callback not answered", tc.data)
		}
	}
}
