package domain

import (
	"sort"
	"time"
)

type Board struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state,omitempty"`
	BoardKind   string `json:"board_kind,omitempty"`
	Description string `json:"description,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type ColumnValue struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Type  string `json:"type,omitempty"`
	Value any    `json:"value,omitempty"`
}

type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	State        string        `json:"state,omitempty"`
	CreatedAt    string        `json:"created_at,omitempty"`
	UpdatedAt    string        `json:"updated_at,omitempty"`
	ColumnValues []ColumnValue `json:"column_values"`
}

// ItemUpdate carries only the fields the caller sent.
type ItemUpdate struct {
	Name         *string
	BoardID      *string
	ColumnValues any
}

// SortBoardsByUpdatedAt orders boards newest first. It is a no-op unless the
// first board carries an updated_at timestamp.
func SortBoardsByUpdatedAt(boards []Board) {
	if len(boards) == 0 || boards[0].UpdatedAt == "" {
		return
	}

	sort.SliceStable(boards, func(i, j int) bool {
		return parseTimestamp(boards[i].UpdatedAt).After(parseTimestamp(boards[j].UpdatedAt))
	})
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}

	return parsed
}
