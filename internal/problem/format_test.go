package problem

import (
	"strings"
	"testing"
)

func TestFormatAnswer_Integers(t *testing.T) {
	cases := map[float64]string{
		15:      "15",
		0:       "0",
		-7:      "-7",
		1000000: "1000000",
		12.0:    "12",
	}
	for n, want := range cases {
		if got := FormatAnswer(n); got != want {
			t.Errorf("FormatAnswer(%v) = %q, want %q", n, got, want)
		}
		if strings.Contains(FormatAnswer(n), ".") {
			t.Errorf("integer %v rendered with a decimal point", n)
		}
	}
}

func TestFormatAnswer_TwoDecimals(t *testing.T) {
	cases := map[float64]string{
		12.5:    "12.50",
		1.245:   "1.25",
		0.1:     "0.10",
		3.14159: "3.14",
		2.675:   "2.68",
		-1.245:  "-1.25",
		-0.5:    "-0.50",
		1.999:   "2.00",
		0.005:   "0.01",
	}
	for n, want := range cases {
		if got := FormatAnswer(n); got != want {
			t.Errorf("FormatAnswer(%v) = %q, want %q", n, got, want)
		}
	}
}

func TestIsCanonicalAnswer(t *testing.T) {
	valid := []string{"15", "-3", "12.50", "0.01", "-1.25", "0"}
	for _, s := range valid {
		if !IsCanonicalAnswer(s) {
			t.Errorf("%q should be canonical", s)
		}
	}

	invalid := []string{"15.5", "15.500", "1,000", "15 apples", "15.", ".5", ""}
	for _, s := range invalid {
		if IsCanonicalAnswer(s) {
			t.Errorf("%q should not be canonical", s)
		}
	}
}

func TestParseAnswer(t *testing.T) {
	if _, ok := ParseAnswer("abc"); ok {
		t.Error("expected parse failure for non-number")
	}
	if n, ok := ParseAnswer(" 12.5 "); !ok || n != 12.5 {
		t.Errorf("ParseAnswer(\" 12.5 \") = %v, %v", n, ok)
	}
}
