package converter

import (
	"math"
	"regexp"
)

// TimecentsToSeconds converts an envelope time in timecents to seconds
func TimecentsToSeconds(tc int16) float64 {
	return math.Pow(2, float64(tc)/1200)
}

// CentibelsToPercent converts a sustain attenuation in centibels to a 0-100
// amplitude percentage
func CentibelsToPercent(cb int16) float64 {
	return 100 * math.Pow(10, -float64(cb)/10/20)
}

// PanPercent converts a pan in tenths of a percent to a percentage
func PanPercent(v int16) float64 {
	return float64(v) / 10
}

// UnpackRange splits a packed key or velocity range. The low byte is the
// lower bound and the high byte the upper bound, each masked to 0-127.
func UnpackRange(v int16) (lo, hi uint8) {
	u := uint16(v)
	return uint8(u & 0x7F), uint8((u >> 8) & 0x7F)
}

// AbsoluteCentsToHz converts an absolute-cent frequency to Hz
func AbsoluteCentsToHz(cents int16) float64 {
	return 8.176 * math.Pow(2, float64(cents)/1200)
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeName replaces every character outside [A-Za-z0-9_-] with '_'
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}
