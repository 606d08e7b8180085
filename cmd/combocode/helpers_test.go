package main

import "testing"

func TestDisplayStarName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"w_hya", "W Hya"},
		{"rdor", "Rdor"},
		{"R_Dor", "R Dor"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := displayStarName(tc.in); got != tc.want {
			t.Fatalf("displayStarName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	if got := formatValue(nil); got != "" {
		t.Fatalf("nil should render empty, got %q", got)
	}
	if got := formatValue([]string{"12C16O", "1H1H16O"}); got != "12C16O; 1H1H16O" {
		t.Fatalf("unexpected list rendering %q", got)
	}
	if got := formatValue("ABSOLUTE"); got != "ABSOLUTE" {
		t.Fatalf("unexpected string rendering %q", got)
	}
	if got := formatValue(2500.0); got != "2500" {
		t.Fatalf("unexpected float rendering %q", got)
	}
}

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{2500, "2500"},
		{2e-6, "2.000000e-06"},
		{6.955e10, "6.955000e+10"},
		{0.002, "0.002"},
	}
	for _, tc := range cases {
		if got := formatFloat(tc.in); got != tc.want {
			t.Fatalf("formatFloat(%g) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
