// Package availability decides whether groomers can take a grooming slot.
// Every function is pure: inputs are read, never mutated, and no I/O happens here.
package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const clockLayout = "15:04"

// ToMinutes converts an HH:mm clock value into minutes since midnight.
// Malformed components count as zero, so bad input yields a stable number instead of an error.
func ToMinutes(clock string) int {
	hours, minutes, _ := strings.Cut(strings.TrimSpace(clock), ":")
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	return h*60 + m
}

// FromMinutes renders minutes since midnight as HH:mm.
func FromMinutes(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ValidClock reports whether s is a well-formed 24h HH:mm value.
func ValidClock(s string) bool {
	if len(s) != len(clockLayout) {
		return false
	}
	_, err := time.Parse(clockLayout, s)
	return err == nil
}

// Overlaps reports whether [startA, endA) and [startB, endB) intersect.
// Back-to-back windows do not overlap. Windows never wrap past midnight.
func Overlaps(startA, endA, startB, endB string) bool {
	return ToMinutes(startA) < ToMinutes(endB) && ToMinutes(startB) < ToMinutes(endA)
}
