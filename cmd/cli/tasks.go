package cli

import (
	"context"
	"fmt"

	"github.com/flowbaker/alloybridge/internal/frontend"
	"github.com/flowbaker/alloybridge/internal/initialization"
	"github.com/flowbaker/alloybridge/pkg/clients/bridge"
	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/spf13/cobra"
)

func NewTasksCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage Zoho CRM tasks",
	}

	cmd.AddCommand(newTasksListCommand(bridgeContainer))
	cmd.AddCommand(newTasksAddCommand(bridgeContainer))
	cmd.AddCommand(newTasksUpdateCommand(bridgeContainer))
	cmd.AddCommand(newTasksDoneCommand(bridgeContainer))
	cmd.AddCommand(newTasksRemoveCommand(bridgeContainer))

	return cmd
}

func newTasksListCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				tasks, err := client.ListTasks(ctx, email)
				if err != nil {
					return err
				}

				fmt.Println(frontend.RenderTasks(tasks))
				return nil
			})
		},
	}

	addEmailFlag(cmd)

	return cmd
}

func newTasksAddCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				if _, err := client.CreateTask(ctx, email, args[0]); err != nil {
					return err
				}

				fmt.Println(frontend.RenderOK(fmt.Sprintf("Created task %q", args[0])))
				return nil
			})
		},
	}

	addEmailFlag(cmd)

	return cmd
}

func newTasksUpdateCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := taskUpdateFromFlags(cmd, args[0])
			if err != nil {
				return err
			}

			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				if _, err := client.UpdateTask(ctx, email, req); err != nil {
					return err
				}

				fmt.Println(frontend.RenderOK(fmt.Sprintf("Updated task %s", args[0])))
				return nil
			})
		},
	}

	addEmailFlag(cmd)
	cmd.Flags().String("name", "", "New task name")
	cmd.Flags().String("status", "", "New status, e.g. \"Working on it\" or \"Done\"")
	cmd.Flags().String("priority", "", "New priority")
	cmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")

	return cmd
}

func newTasksDoneCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				_, err := client.UpdateTask(ctx, email, bridge.UpdateTaskRequest{
					ID:           bridge.FlexibleID(args[0]),
					ColumnValues: []domain.ColumnValue{{ID: domain.ColumnStatus, Text: "Done"}},
				})
				if err != nil {
					return err
				}

				fmt.Println(frontend.RenderOK(fmt.Sprintf("Task %s done", args[0])))
				return nil
			})
		},
	}

	addEmailFlag(cmd)

	return cmd
}

func newTasksRemoveCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				if _, err := client.DeleteTask(ctx, email, args[0]); err != nil {
					return err
				}

				fmt.Println(frontend.RenderOK(fmt.Sprintf("Deleted task %s", args[0])))
				return nil
			})
		},
	}

	addEmailFlag(cmd)

	return cmd
}

func taskUpdateFromFlags(cmd *cobra.Command, taskID string) (bridge.UpdateTaskRequest, error) {
	req := bridge.UpdateTaskRequest{ID: bridge.FlexibleID(taskID)}

	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		req.Name = &name
	}

	columns := []struct {
		flag   string
		column string
		kind   string
	}{
		{flag: "status", column: domain.ColumnStatus},
		{flag: "priority", column: domain.ColumnPriority},
		{flag: "due", column: domain.ColumnDueDate, kind: "date"},
	}

	for _, c := range columns {
		if !cmd.Flags().Changed(c.flag) {
			continue
		}

		value, _ := cmd.Flags().GetString(c.flag)
		req.ColumnValues = append(req.ColumnValues, domain.ColumnValue{ID: c.column, Text: value, Type: c.kind})
	}

	if req.Name == nil && len(req.ColumnValues) == 0 {
		return req, fmt.Errorf("nothing to update: pass --name, --status, --priority or --due")
	}

	return req, nil
}

func withClient(cmd *cobra.Command, bridgeContainer *initialization.BridgeContainer, fn func(ctx context.Context, client *bridge.Client, email string) error) error {
	ctx := context.Background()

	client, err := newBridgeClient(ctx, cmd, bridgeContainer)
	if err != nil {
		return err
	}

	email, err := emailFlag(cmd)
	if err != nil {
		return err
	}

	if err := fn(ctx, client, email); err != nil {
		fmt.Println(frontend.RenderError(err.Error()))
		return err
	}

	return nil
}
