package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12", 1200, true},
		{".5", 50, true},
		{"12.344", 1234, true}, // third decimal below 5 drops
		{"12.345", 1235, true}, // half-up on the third decimal
		{"12.346", 1235, true},
		{"0", 0, false},
		{"0.00", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.cents) {
			t.Fatalf("%q: got %d, %v; want %d", tc.in, got, err, tc.cents)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{50, "0.50"},
		{100, "1.00"},
		{-250, "-2.50"},
		{5, "0.05"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("cents %d: got %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" rent , utilities,, food\n")
	if len(got) != 3 || got[0] != "rent" || got[1] != "utilities" || got[2] != "food" {
		t.Fatalf("unexpected tags: %v", got)
	}
	if got := SplitTags(""); len(got) != 0 {
		t.Fatalf("expected no tags, got %v", got)
	}
}
