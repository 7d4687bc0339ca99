package lyrics

import (
	"fmt"
	"strconv"
	"time"
)

const maxFractionDigits = 3

// FormatTimestamp encodes d as an LRC timestamp token like [01:02.34].
// Hundredths are truncated, never rounded.
func FormatTimestamp(d time.Duration) (string, error) {
	if d < 0 {
		return "", fmt.Errorf("%w: negative duration %v", ErrInvalidTimestamp, d)
	}
	minutes := d / time.Minute
	seconds := (d % time.Minute) / time.Second
	hundredths := (d % time.Second) / (10 * time.Millisecond)
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, seconds, hundredths), nil
}

// DecodeTimestamp converts the numeric parts of a timestamp token into a
// duration. The fraction may be empty, or 1 to 3 digits; its length sets
// the scale, so "5" is tenths, "50" hundredths and "500" thousandths.
func DecodeTimestamp(minutes, seconds, fraction string) (time.Duration, error) {
	m, err := parseDigits(minutes)
	if err != nil {
		return 0, fmt.Errorf("%w: minutes %q", ErrInvalidTimestamp, minutes)
	}
	s, err := parseDigits(seconds)
	if err != nil || s > 59 {
		return 0, fmt.Errorf("%w: seconds %q", ErrInvalidTimestamp, seconds)
	}

	d := time.Duration(m)*time.Minute + time.Duration(s)*time.Second
	if fraction == "" {
		return d, nil
	}
	if len(fraction) > maxFractionDigits {
		return 0, fmt.Errorf("%w: fraction %q", ErrInvalidTimestamp, fraction)
	}
	f, err := parseDigits(fraction)
	if err != nil {
		return 0, fmt.Errorf("%w: fraction %q", ErrInvalidTimestamp, fraction)
	}
	scale := time.Duration(1)
	for range len(fraction) {
		scale *= 10
	}
	return d + time.Duration(f)*time.Second/scale, nil
}

// parseDigits accepts only non-empty ASCII digit strings.
func parseDigits(s string) (int64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseInt(s, 10, 64)
}
