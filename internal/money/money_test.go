package money

import (
	"errors"
	"testing"

	"wishlyBack/internal/models"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"50", 5000},
		{"50.00", 5000},
		{"50,00", 5000},
		{"0.5", 50},
		{"0,5", 50},
		{"1 250,99", 125099},
		{"  12.3 ", 1230},
		{".99", 99},
		{"0", 0},
	}
	for _, c := range cases {
		got, err := ToMinorUnits(c.in)
		if err != nil {
			t.Fatalf("ToMinorUnits(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ToMinorUnits(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestToMinorUnitsRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "1.2.3", "12.345", "1,2,3", "12e3", "+5", "NaN"} {
		if _, err := ToMinorUnits(in); !errors.Is(err, models.ErrInvalidAmount) {
			t.Fatalf("ToMinorUnits(%q): expected ErrInvalidAmount, got %v", in, err)
		}
	}
}

func TestToDisplayAmount(t *testing.T) {
	if got := ToDisplayAmount(5000); got != "50.00" {
		t.Fatalf("ToDisplayAmount(5000) = %q", got)
	}
	if got := ToDisplayAmount(99); got != "0.99" {
		t.Fatalf("ToDisplayAmount(99) = %q", got)
	}
	if got := ToDisplayAmount(125099); got != "1250.99" {
		t.Fatalf("ToDisplayAmount(125099) = %q", got)
	}
}

func TestRemaining(t *testing.T) {
	if got := Remaining(5000, 2000); got != 3000 {
		t.Fatalf("Remaining = %d, want 3000", got)
	}
	if got := Remaining(5000, 5000); got != 0 {
		t.Fatalf("Remaining at target = %d, want 0", got)
	}
	if got := Remaining(5000, 9000); got != 0 {
		t.Fatalf("Remaining past target = %d, want 0", got)
	}
}
