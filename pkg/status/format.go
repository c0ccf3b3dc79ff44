package status

import (
	"fmt"
)

// ProgressFormatter defines how progress updates are rendered as text
type ProgressFormatter interface {
	// FormatProgress formats a progress message
	FormatProgress(current, total int, label string) string
}

// DefaultProgressFormatter provides a default implementation of ProgressFormatter
type DefaultProgressFormatter struct{}

// NewDefaultProgressFormatter creates a new DefaultProgressFormatter
func NewDefaultProgressFormatter() *DefaultProgressFormatter {
	return &DefaultProgressFormatter{}
}

// Percentage returns current/total as a percentage in [0, 100]. A zero
// total reads as complete once anything has been done.
func Percentage(current, total int) float64 {
	if total <= 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	pct := float64(current) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// FormatProgress formats a progress message with percentage
func (f *DefaultProgressFormatter) FormatProgress(current, total int, label string) string {
	percentage := Percentage(current, total)

	icon := "⏳"
	if current >= total {
		icon = "✅"
	}
	msg := fmt.Sprintf("%s Progress: %d/%d (%.0f%%)", icon, current, total, percentage)
	if label != "" {
		msg += " | " + label
	}
	return msg
}
