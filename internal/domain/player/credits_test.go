package player

import (
	"errors"
	"testing"
)

func TestParseCredits(t *testing.T) {
	tests := []struct {
		raw       string
		want      Credits
		targetErr error
	}{
		{raw: "8.5", want: 850},
		{raw: "10", want: 1000},
		{raw: "10.50", want: 1050},
		{raw: "7.25", want: 725},
		{raw: "100.0", want: 10000},
		{raw: ".5", want: 50},
		{raw: "-1.5", want: -150},
		{raw: " 9 ", want: 900},
		{raw: "7.125", targetErr: ErrInvalidCredits},
		{raw: "", targetErr: ErrInvalidCredits},
		{raw: "abc", targetErr: ErrInvalidCredits},
		{raw: "1.x", targetErr: ErrInvalidCredits},
		{raw: ".", targetErr: ErrInvalidCredits},
		{raw: "1.+5", targetErr: ErrInvalidCredits},
		{raw: "++5", targetErr: ErrInvalidCredits},
		{raw: "+-5", targetErr: ErrInvalidCredits},
		{raw: "1.-5", targetErr: ErrInvalidCredits},
		{raw: "1 .5", targetErr: ErrInvalidCredits},
		{raw: "+7.5", want: 750},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseCredits(tc.raw)
			if tc.targetErr != nil {
				if !errors.Is(err, tc.targetErr) {
					t.Fatalf("expected %v, got %v", tc.targetErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse credits: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}

func TestSumCredits_IsExact(t *testing.T) {
	// Eleven picks totalling 99.5 credits; float summation of tenths drifts.
	picks := []string{"9.5", "9.5", "9.0", "9.0", "9.0", "9.0", "9.0", "9.0", "9.0", "8.5", "9.0"}
	values := make([]Credits, 0, len(picks))
	for _, raw := range picks {
		v, err := ParseCredits(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		values = append(values, v)
	}

	total := SumCredits(values...)
	if total != 9950 {
		t.Fatalf("expected 9950 units, got %d", total)
	}
	if total.String() != "99.5" {
		t.Fatalf("unexpected string form: %s", total.String())
	}
}

func TestCredits_String(t *testing.T) {
	tests := map[Credits]string{
		10000: "100",
		1050:  "10.5",
		725:   "7.25",
		5:     "0.05",
		-150:  "-1.5",
	}
	for in, want := range tests {
		if got := in.String(); got != want {
			t.Fatalf("Credits(%d).String()=%q want %q", in, got, want)
		}
	}
}
