package frontend

import (
	"fmt"

	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	StatusOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	StatusWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	StatusError = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	Muted       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	Header      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

func RenderOK(msg string) string {
	return StatusOK.Render("✓") + " " + msg
}

func RenderWarn(msg string) string {
	return StatusWarn.Render("⚠") + " " + msg
}

func RenderError(msg string) string {
	return StatusError.Render("✗") + " " + msg
}

// PromptEmail asks for the email interactively.
func PromptEmail() (string, error) {
	var email string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Description("The address your RunAlloy credentials are linked to").
				Value(&email).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("email is required")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}

	return email, nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Muted).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func RenderTasks(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return Muted.Render("No tasks")
	}

	t := newTable("ID", "NAME", "STATUS", "PRIORITY", "DUE", "OWNER")

	for _, task := range tasks {
		due := "-"
		if task.DueDate != nil && *task.DueDate != "" {
			due = *task.DueDate
		}

		t.Row(task.ID, task.Name, task.Status, task.Priority, due, task.Owner)
	}

	return t.Render()
}

func RenderBoards(boards []domain.Board) string {
	if len(boards) == 0 {
		return Muted.Render("No boards")
	}

	t := newTable("ID", "NAME", "KIND", "UPDATED")

	for _, board := range boards {
		t.Row(board.ID, board.Name, board.BoardKind, board.UpdatedAt)
	}

	return t.Render()
}

func RenderItems(items []domain.Item) string {
	if len(items) == 0 {
		return Muted.Render("No items")
	}

	t := newTable("ID", "NAME", "STATUS", "UPDATED")

	for _, item := range items {
		status := ""
		if column, ok := domain.FindColumn(item.ColumnValues, domain.ColumnStatus); ok {
			status = column.Text
		}

		t.Row(item.ID, item.Name, status, item.UpdatedAt)
	}

	return t.Render()
}
