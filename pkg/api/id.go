package api

import (
	"regexp"
	"strconv"
	"time"
)

const completionIDPrefix = "chatcmpl-"

var completionIDPattern = regexp.MustCompile(`^chatcmpl-[0-9]+$`)

// NewCompletionID generates a synthetic completion ID derived from the
// current time, used when the upstream response carries no name of its own.
func NewCompletionID() string {
	return NewCompletionIDAt(time.Now())
}

// NewCompletionIDAt generates a completion ID for the given instant.
func NewCompletionIDAt(t time.Time) string {
	return completionIDPrefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// ValidateCompletionID checks whether the given string is a synthetic
// completion ID ("chatcmpl-" followed by a millisecond timestamp).
func ValidateCompletionID(id string) bool {
	return completionIDPattern.MatchString(id)
}
