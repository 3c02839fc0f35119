package validator

import (
	"strconv"
	"strings"
	"time"

	"github.com/tranvq/shiftlog/internal/domain/shift"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ParseDate parses a calendar date in "YYYY-MM-DD" format.
func ParseDate(s string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	return date, err == nil
}

// ParseClock parses a time of day in "HH:MM" format.
func ParseClock(s string) (shift.Clock, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return shift.Clock{}, false
	}
	return shift.Clock{Hour: t.Hour(), Minute: t.Minute()}, true
}

// ParseAmount parses a non-negative integer money amount.
func ParseAmount(s string) (int, bool) {
	amount, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || amount < 0 {
		return 0, false
	}
	return amount, true
}
