package zmail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSearchQueryBuild(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *SearchQuery
		expected string
	}{
		{
			name:     "empty query",
			build:    NewSearchQuery,
			expected: "",
		},
		{
			name: "single sender",
			build: func() *SearchQuery {
				return NewSearchQuery().From("alice@example.com")
			},
			expected: "from:alice@example.com",
		},
		{
			name: "combined filters",
			build: func() *SearchQuery {
				return NewSearchQuery().
					From("alice@example.com").
					Subject("invoice").
					HasAttachment().
					IsUnread()
			},
			expected: "from:alice@example.com subject:invoice has:attachment is:unread",
		},
		{
			name: "date range",
			build: func() *SearchQuery {
				after := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
				before := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
				return NewSearchQuery().DateAfter(after).DateBefore(before)
			},
			expected: "after:2026/01/01 before:2026/06/30",
		},
		{
			name: "free text with flag filter",
			build: func() *SearchQuery {
				return NewSearchQuery().Text("quarterly report").IsFlagged()
			},
			expected: "quarterly report is:flagged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sq := tt.build()
			assert.Equal(t, tt.expected, sq.Build())
			assert.Equal(t, tt.expected == "", sq.IsEmpty())
		})
	}
}
