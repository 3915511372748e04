package domain

const (
	ColumnStatus   = "status"
	ColumnPriority = "priority"
	ColumnDueDate  = "due_date"
	ColumnOwner    = "owner"
)

// Task is the list-row view model rendered by the client.
type Task struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	DueDate      *string       `json:"dueDate"`
	Priority     string        `json:"priority"`
	Status       string        `json:"status"`
	Owner        string        `json:"owner"`
	ModifiedTime string        `json:"modifiedTime,omitempty"`
	CreatedTime  string        `json:"createdTime,omitempty"`
	ColumnValues []ColumnValue `json:"column_values"`
}

// TaskUpdate carries only the fields the caller sent.
type TaskUpdate struct {
	Name         *string
	ColumnValues []ColumnValue
}

// FindColumn returns the first column with the given id.
func FindColumn(columns []ColumnValue, id string) (ColumnValue, bool) {
	for _, column := range columns {
		if column.ID == id {
			return column, true
		}
	}

	return ColumnValue{}, false
}
