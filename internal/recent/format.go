package recent

import (
	"fmt"
	"time"
)

// FormatAge describes how long ago createdAt was, relative to now.
func FormatAge(createdAt, now time.Time) string {
	age := now.Sub(createdAt)

	switch {
	case age < time.Minute:
		return "Just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age/time.Minute))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age/time.Hour))
	case age < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(age/(24*time.Hour)))
	default:
		return createdAt.In(now.Location()).Format("Jan 2")
	}
}
