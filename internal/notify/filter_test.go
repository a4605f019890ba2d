package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/digital-notice-board/internal/model"
)

func TestFilterMatches(t *testing.T) {
	n := model.Notice{
		ID:          1,
		Title:       "Semester Exam Schedule",
		Description: "Final exams begin on March 10th in the main hall.",
		Category:    "exam",
		Date:        "2026-03-01",
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter passes", Filter{}, true},
		{"title substring, mixed case", Filter{Search: "eXaM sChEd"}, true},
		{"description substring", Filter{Search: "main hall"}, true},
		{"no substring match", Filter{Search: "holiday"}, false},
		{"exact date", Filter{Date: "2026-03-01"}, true},
		{"different date", Filter{Date: "2026-03-02"}, false},
		{"exact category", Filter{Category: "exam"}, true},
		{"different category", Filter{Category: "event"}, false},
		{"all fields must match", Filter{Search: "exam", Date: "2026-03-01", Category: "event"}, false},
		{"all fields matching", Filter{Search: "exam", Date: "2026-03-01", Category: "exam"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(n))
		})
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	notices := []model.Notice{
		{ID: 3, Title: "Exam hall change", Category: "exam"},
		{ID: 2, Title: "Sports day", Category: "event"},
		{ID: 1, Title: "Exam fee deadline", Category: "exam"},
	}

	got := Apply(notices, Filter{Category: "exam"})

	assert.Len(t, got, 2)
	assert.Equal(t, uint64(3), got[0].ID)
	assert.Equal(t, uint64(1), got[1].ID)

	assert.Empty(t, Apply(notices, Filter{Search: "nothing matches"}))
}
