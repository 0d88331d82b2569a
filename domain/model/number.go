package model

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPrefix matches the leading decimal literal of a string.
var numberPrefix = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseNumber reads the leading number of s, ignoring leading whitespace and
// any trailing text ("12 kWh" is 12). ok is false when there is no numeric
// prefix or the value is not finite.
func ParseNumber(s string) (float64, bool) {
	prefix := numberPrefix.FindString(strings.TrimLeft(s, " \t\r\n"))
	if prefix == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// integerPrefix matches the leading integer literal of a string.
var integerPrefix = regexp.MustCompile(`^[+-]?\d+`)

// ParseInteger reads the leading integer of s, so "12.7" is 12 and "3 floors" is 3.
func ParseInteger(s string) (int, bool) {
	prefix := integerPrefix.FindString(strings.TrimLeft(s, " \t\r\n"))
	if prefix == "" {
		return 0, false
	}
	v, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return v, true
}
