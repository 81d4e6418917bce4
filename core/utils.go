package core

import (
	"strings"
	"time"
)

// Date layouts
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

var NowFunc = time.Now // mockable

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Today returns the current UTC calendar date as YYYY-MM-DD.
func Today() string {
	return NowFunc().UTC().Format(DateLayout)
}

// ThisMonth returns the current UTC month as YYYY-MM.
func ThisMonth() string {
	return NowFunc().UTC().Format(MonthLayout)
}

func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func IsMonth(s string) bool {
	_, err := time.Parse(MonthLayout, s)
	return err == nil
}
