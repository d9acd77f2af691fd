package analytics

import (
	"math"
	"strconv"
	"strings"
)

// roundHalfUp rounds to the nearest integer with ties toward +Inf, the way
// the dashboard's JavaScript does.
func roundHalfUp(x float64) float64 {
	floor := math.Floor(x)
	if x-floor >= 0.5 {
		return floor + 1
	}
	return floor
}

func round(x float64) int {
	return int(roundHalfUp(x))
}

func clamp(value, lo, hi float64) float64 {
	return math.Min(math.Max(value, lo), hi)
}

// toFixed2 rounds the exact decimal value of x to two places with ties
// going up, then reparses it, matching Number(x.toFixed(2)).
func toFixed2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	out, err := strconv.ParseFloat(toFixed(x, 2), 64)
	if err != nil {
		return math.Round(x*100) / 100
	}
	return out
}

// toFixed formats x with the given number of decimal places the way
// Number.prototype.toFixed does: the exact binary value is rounded on its
// magnitude with ties going up and the point is always ".".
func toFixed(x float64, places int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', places, 64)
	}
	negative := x < 0
	// 40 digits is far below the gap between a double and any tie.
	digits := strconv.FormatFloat(math.Abs(x), 'f', 40, 64)
	dot := strings.IndexByte(digits, '.')
	whole, err := strconv.ParseInt(digits[:dot], 10, 64)
	if err != nil {
		return strconv.FormatFloat(x, 'f', places, 64)
	}
	scale := int64(1)
	scaled := whole
	for i := 1; i <= places; i++ {
		scale *= 10
		scaled = scaled*10 + int64(digits[dot+i]-'0')
	}
	if digits[dot+places+1] >= '5' {
		scaled++
	}
	text := strconv.FormatInt(scaled/scale, 10)
	if places > 0 {
		frac := strconv.FormatInt(scaled%scale, 10)
		text += "." + strings.Repeat("0", places-len(frac)) + frac
	}
	if negative {
		text = "-" + text
	}
	return text
}
