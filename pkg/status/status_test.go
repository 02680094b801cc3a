package status

import (
	"testing"
	"time"
)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dp(s string) *time.Time {
	t := d(s)
	return &t
}

func TestDeriveSimple(t *testing.T) {
	today := d("2025-02-05")

	tests := []struct {
		name     string
		expected *time.Time
		actual   *time.Time
		want     Flag
	}{
		{"collected before expected", dp("2025-01-31"), dp("2025-01-20"), TooEarly},
		{"collected on expected day", dp("2025-01-31"), dp("2025-01-31"), Completed},
		{"collected after expected", dp("2025-01-31"), dp("2025-02-03"), Completed},
		{"uncollected and past due", dp("2025-01-31"), nil, Overdue},
		{"uncollected and due today", dp("2025-02-05"), nil, DueSoon},
		{"uncollected and due later", dp("2025-03-01"), nil, DueSoon},
		{"no expected date at all", nil, nil, DueSoon},
		{"collected with no expected date", nil, dp("2025-02-01"), Completed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(PolicySimple, tt.expected, tt.actual, today)
			if got != tt.want {
				t.Errorf("Derive(simple) = %s, want %s", got, tt.want)
			}
		})
	}
}

// Plot P1, planted 2025-01-01, Height due after 30 days, nothing recorded,
// today 2025-02-05: expected 2025-01-31 has passed, so the pair is overdue.
func TestDeriveSimpleOverdueScenario(t *testing.T) {
	planting := d("2025-01-01")
	expected := planting.AddDate(0, 0, 30)
	if expected != d("2025-01-31") {
		t.Fatalf("expected date = %s, want 2025-01-31", expected.Format("2006-01-02"))
	}
	got := Derive(PolicySimple, &expected, nil, d("2025-02-05"))
	if got != Overdue {
		t.Errorf("Derive = %s, want OVERDUE", got)
	}
}

func TestDeriveWindowed(t *testing.T) {
	tests := []struct {
		name     string
		expected *time.Time
		actual   *time.Time
		today    time.Time
		want     Flag
	}{
		{"value recorded means done", dp("2025-01-31"), dp("2025-01-10"), d("2025-02-05"), Completed},
		{"far before the window", dp("2025-03-11"), nil, d("2025-03-01"), TooEarly},
		{"three days before due", dp("2025-03-11"), nil, d("2025-03-08"), DueSoon},
		{"inside the grace period", dp("2025-03-11"), nil, d("2025-03-14"), DueSoon},
		{"past the grace period", dp("2025-03-11"), nil, d("2025-03-15"), Overdue},
		{"no expected date", nil, nil, d("2025-03-15"), DueSoon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(PolicyWindowed, tt.expected, tt.actual, tt.today)
			if got != tt.want {
				t.Errorf("Derive(windowed) = %s, want %s", got, tt.want)
			}
		})
	}
}

// Planting 2025-03-01 with a 10-day offset, checked on 2025-03-08: three days
// ahead of the due date falls inside the -5..+3 window.
func TestDeriveWindowedDueSoonScenario(t *testing.T) {
	expected := d("2025-03-01").AddDate(0, 0, 10)
	got := Derive(PolicyWindowed, &expected, nil, d("2025-03-08"))
	if got != DueSoon {
		t.Errorf("Derive = %s, want DUE_SOON", got)
	}
}

func TestFlagSymbols(t *testing.T) {
	for _, f := range []Flag{TooEarly, DueSoon, Overdue, Completed} {
		if !f.Valid() {
			t.Errorf("%s should be valid", f)
		}
		if f.Symbol() == "-" {
			t.Errorf("%s has no symbol", f)
		}
	}
	if Flag("bogus").Valid() {
		t.Error("bogus flag should not validate")
	}
	if got := Flag("bogus").Symbol(); got != "-" {
		t.Errorf("bogus symbol = %s, want -", got)
	}
}

// Times carrying a clock component must compare by calendar date only.
func TestDeriveIgnoresTimeOfDay(t *testing.T) {
	expected := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)
	today := time.Date(2025, 1, 31, 1, 0, 0, 0, time.UTC)
	if got := Derive(PolicySimple, &expected, nil, today); got != DueSoon {
		t.Errorf("same-day with clock skew = %s, want DUE_SOON", got)
	}
}
