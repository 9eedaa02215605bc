package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2025-01-18")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2025-01-18" {
		t.Errorf("expected 2025-01-18, got %s", d)
	}
	if d.ISOWeekday() != 6 {
		t.Errorf("expected Saturday (6), got %d", d.ISOWeekday())
	}

	for _, bad := range []string{"", "2025-1-18", "18/01/2025", "2025-02-30"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q): expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestDateArithmetic(t *testing.T) {
	t.Parallel()

	d := MustParseDate("2024-12-31")
	next := d.AddDays(1)
	if next.String() != "2025-01-01" {
		t.Errorf("expected 2025-01-01, got %s", next)
	}
	if !d.Before(next) || !next.After(d) || d.Equal(next) {
		t.Error("ordering of consecutive dates is wrong")
	}
	if got := MinDate(next, d); !got.Equal(d) {
		t.Errorf("expected MinDate to return %s, got %s", d, got)
	}
	if MustParseDate("2025-01-19").ISOWeekday() != 7 {
		t.Error("expected Sunday to be weekday 7")
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+10", 10*3600)
	instant := time.Date(2025, time.January, 13, 20, 0, 0, 0, time.UTC)

	if got := DateOf(instant.In(loc)).String(); got != "2025-01-14" {
		t.Errorf("expected local date 2025-01-14, got %s", got)
	}
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	var payload struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2025-01-13"}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"date":"2025-01-13"}` {
		t.Errorf("unexpected encoding: %s", out)
	}

	if err := json.Unmarshal([]byte(`{"date":"tomorrow"}`), &payload); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDateScan(t *testing.T) {
	t.Parallel()

	var d Date
	if err := d.Scan("2025-01-13"); err != nil || d.String() != "2025-01-13" {
		t.Errorf("scan from string: got %s, %v", d, err)
	}
	if err := d.Scan([]byte("2025-01-14")); err != nil || d.String() != "2025-01-14" {
		t.Errorf("scan from bytes: got %s, %v", d, err)
	}
	if err := d.Scan(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)); err != nil || d.String() != "2025-01-15" {
		t.Errorf("scan from time: got %s, %v", d, err)
	}
	if err := d.Scan(42); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}
