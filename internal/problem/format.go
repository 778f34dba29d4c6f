package problem

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// answerTextRe is the output grammar of FormatAnswer: a bare integer or
// exactly two decimal digits.
var answerTextRe = regexp.MustCompile(`^-?\d+(\.\d\d)?$`)

// FormatAnswer renders a numeric answer under the two-tier display rule:
// mathematical integers have no decimal point, everything else gets
// exactly two decimal digits with half-up rounding at the second place.
// No grouping separators, no units.
func FormatAnswer(n float64) string {
	if n == math.Trunc(n) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return roundTwoHalfUp(n)
}

// IsCanonicalAnswer reports whether s already matches FormatAnswer's
// output grammar.
func IsCanonicalAnswer(s string) bool {
	return answerTextRe.MatchString(s)
}

// ParseAnswer parses a user-supplied or generated numeric string.
func ParseAnswer(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// roundTwoHalfUp rounds to two decimals, half away from zero. The
// rounding runs on the shortest decimal representation rather than on
// the float itself, so inputs like 1.245 land on 1.25 instead of being
// dragged down by binary representation error.
func roundTwoHalfUp(n float64) string {
	sign := ""
	if math.Signbit(n) {
		sign = "-"
	}

	s := strconv.FormatFloat(math.Abs(n), 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot == -1 {
		return sign + s + ".00"
	}

	intPart, frac := s[:dot], s[dot+1:]
	for len(frac) < 2 {
		frac += "0"
	}
	if len(frac) == 2 {
		return sign + intPart + "." + frac
	}

	digits := intPart + frac[:2]
	if frac[2] >= '5' {
		digits = incrementDecimal(digits)
	}
	return sign + digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}

// incrementDecimal adds one to a non-negative decimal digit string.
func incrementDecimal(digits string) string {
	b := []byte(digits)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}
