package notify

import (
	"strings"

	"github.com/iliyamo/digital-notice-board/internal/model"
)

// Filter narrows a notice collection for display. All set fields must
// match; empty fields pass everything. Search is a case-insensitive
// substring match over title and description; Date and Category are
// exact string comparisons against the stored values (no calendar
// arithmetic).
type Filter struct {
	Search   string
	Date     string
	Category string
}

// Matches reports whether n passes the filter.
func (f Filter) Matches(n model.Notice) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(n.Title), q) &&
			!strings.Contains(strings.ToLower(n.Description), q) {
			return false
		}
	}
	if f.Date != "" && n.Date != f.Date {
		return false
	}
	if f.Category != "" && n.Category != f.Category {
		return false
	}
	return true
}

// Apply returns the notices passing the filter, preserving order.
func Apply(notices []model.Notice, f Filter) []model.Notice {
	out := make([]model.Notice, 0, len(notices))
	for _, n := range notices {
		if f.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}
