package service_test

import (
	"strings"
	"testing"

	"github.com/oxabz/time-tracker/internal/service"
)

func TestWriteTimesCSV(t *testing.T) {
	var buf strings.Builder
	times := []service.TimeView{
		{Name: "Coding", TotalSeconds: 3720},
		{Name: "Review", TotalSeconds: 59},
	}

	if err := service.WriteTimesCSV(&buf, times); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	want := "Activity,Time\nCoding,1h2m\nReview,0h0m\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteTimesCSVEmpty(t *testing.T) {
	var buf strings.Builder
	if err := service.WriteTimesCSV(&buf, nil); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if buf.String() != "Activity,Time\n" {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0h0m"},
		{59, "0h0m"},
		{60, "0h1m"},
		{3600, "1h0m"},
		{3660, "1h1m"},
		{86400, "24h0m"},
		{90061, "25h1m"},
	}
	for _, tc := range cases {
		if got := service.FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%d) = %s, want %s", tc.seconds, got, tc.want)
		}
	}
}
