package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortBoardsByUpdatedAt(t *testing.T) {
	tests := []struct {
		name     string
		boards   []Board
		expected []string
	}{
		{
			name: "newest first",
			boards: []Board{
				{ID: "a", UpdatedAt: "2024-01-01T00:00:00Z"},
				{ID: "b", UpdatedAt: "2024-03-01T00:00:00.5Z"},
				{ID: "c", UpdatedAt: "2024-02-01T00:00:00Z"},
			},
			expected: []string{"b", "c", "a"},
		},
		{
			name: "untouched when first board has no timestamp",
			boards: []Board{
				{ID: "a"},
				{ID: "b", UpdatedAt: "2024-03-01T00:00:00Z"},
			},
			expected: []string{"a", "b"},
		},
		{
			name:     "empty",
			boards:   []Board{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortBoardsByUpdatedAt(tt.boards)

			ids := make([]string, 0, len(tt.boards))
			for _, board := range tt.boards {
				ids = append(ids, board.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestStatusTable(t *testing.T) {
	table := NewStatusTable(StatusPair{UI: "Done", Vendor: "Completed"})

	assert.Equal(t, "Completed", table.ToVendor("Done"))
	assert.Equal(t, "Done", table.ToUI("Completed"))
	assert.Equal(t, "Other", table.ToVendor("Other"))
	assert.Equal(t, "Other", table.ToUI("Other"))
}

func TestActionParams_Payload(t *testing.T) {
	payload := ActionParams{RequestBody: map[string]any{"a": 1}}.Payload("cred")

	assert.Equal(t, ActionPayload{
		CredentialID:      "cred",
		QueryParameters:   map[string]any{},
		RequestBody:       map[string]any{"a": 1},
		AdditionalHeaders: map[string]any{},
		PathParams:        map[string]any{},
	}, payload)
}
