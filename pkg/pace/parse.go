package pace

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/shopspring/decimal"
)

const (
	MaxDurationSeconds = 86400     // 24h
	MaxDistanceMeters  = 1_000_000 // 1000km
	DefaultSpeedCap    = 100.0     // km/h
)

var (
	durationPattern = regexp.MustCompile(`^[0-9:]+$`)
	decimalPattern  = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)
)

// ParseDuration converts SS, MM:SS or HH:MM:SS into seconds.
// Invalid input yields 0. The result is clamped to [0, MaxDurationSeconds].
func ParseDuration(text string) int {
	secs, ok := parseClock(text)
	if !ok {
		return 0
	}
	return min(secs, MaxDurationSeconds)
}

// DurationFromText returns an unset value for blank text, otherwise the
// parsed duration (which may be 0 for invalid input).
func DurationFromText(text string) omit.Val[int] {
	if strings.TrimSpace(text) == "" {
		return omit.Val[int]{}
	}
	return omit.From(ParseDuration(text))
}

// parseClock parses the clock notation without clamping.
// Each part is capped so that the sum cannot overflow.
func parseClock(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if !durationPattern.MatchString(text) {
		return 0, false
	}
	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return 0, false
	}
	total := 0
	for _, p := range parts {
		if p == "" {
			return 0, false
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			// only digits here, so this is an out of range value
			v = math.MaxInt32
		}
		v = min(v, math.MaxInt32)
		total = total*60 + v
	}
	return total, true
}

// FormatDuration renders seconds as MM:SS or HH:MM:SS if there are hours.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || seconds <= 0 {
		return ""
	}
	total := int(math.Round(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h == 0 {
		return fmt.Sprintf("%02d:%02d", m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatPace renders seconds as MM:SS. Minutes are not folded into hours.
func FormatPace(seconds float64) string {
	if math.IsNaN(seconds) || seconds <= 0 {
		return ""
	}
	total := int(math.Round(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ParseDistance parses a decimal distance in meters.
// Blank or invalid text is unset. The value is clamped to [0, MaxDistanceMeters].
func ParseDistance(text string) omit.Val[float64] {
	d, ok := parseDecimal(text)
	if !ok {
		return omit.Val[float64]{}
	}
	return omit.From(clamp(d, MaxDistanceMeters).InexactFloat64())
}

// ParseSpeed parses a decimal speed in km/h.
// Values above speedCap are clamped to speedCap.
func ParseSpeed(text string, speedCap float64) omit.Val[float64] {
	d, ok := parseDecimal(text)
	if !ok {
		return omit.Val[float64]{}
	}
	return omit.From(clamp(d, speedCap).InexactFloat64())
}

func parseDecimal(text string) (decimal.Decimal, bool) {
	text = strings.TrimSpace(text)
	if !decimalPattern.MatchString(text) || strings.Trim(text, ".") == "" {
		return decimal.Zero, false
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	if strings.HasSuffix(text, ".") {
		text += "0"
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func clamp(d decimal.Decimal, upper float64) decimal.Decimal {
	return decimal.Max(decimal.Zero, decimal.Min(d, decimal.NewFromFloat(upper)))
}

// FormatDistance renders meters without decimals
func FormatDistance(meters float64) string {
	return formatFixed(meters, 0)
}

// FormatSpeed renders km/h with two decimals
func FormatSpeed(kmh float64) string {
	return formatFixed(kmh, 2)
}

func formatFixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}
