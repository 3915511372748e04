package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/flowbaker/alloybridge/internal/frontend"
	"github.com/flowbaker/alloybridge/internal/initialization"
	"github.com/flowbaker/alloybridge/pkg/clients/bridge"

	"github.com/spf13/cobra"
)

func NewBoardsCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Manage Monday boards",
	}

	cmd.AddCommand(newBoardsListCommand(bridgeContainer))
	cmd.AddCommand(newBoardsAddCommand(bridgeContainer))
	cmd.AddCommand(newBoardsRenameCommand(bridgeContainer))
	cmd.AddCommand(newBoardsRemoveCommand(bridgeContainer))

	return cmd
}

func newBoardsListCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				boards, err := client.ListBoards(ctx, email)
				if err != nil {
					return err
				}

				fmt.Println(frontend.RenderBoards(boards))
				return nil
			})
		},
	}

	addEmailFlag(cmd)

	return cmd
}

func newBoardsAddCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a public board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				if _, err := client.CreateBoard(ctx, email, args[0]); err != nil {
					return err
				}

				fmt.Println(frontend.RenderOK(fmt.Sprintf("Created board %q", args[0])))
				return nil
			})
		},
	}

	addEmailFlag(cmd)

	return cmd
}

func newBoardsRenameCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <board-id> <name>",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				if _, err := client.UpdateBoard(ctx, email, args[0], args[1]); err != nil {
					return err
				}

				fmt.Println(frontend.RenderOK(fmt.Sprintf("Renamed board %s to %q", args[0], args[1])))
				return nil
			})
		},
	}

	addEmailFlag(cmd)

	return cmd
}

func newBoardsRemoveCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <board-id>",
		Short: "Delete a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				if _, err := client.DeleteBoard(ctx, email, args[0]); err != nil {
					return err
				}

				fmt.Println(frontend.RenderOK(fmt.Sprintf("Deleted board %s", args[0])))
				return nil
			})
		},
	}

	addEmailFlag(cmd)

	return cmd
}

func NewItemsCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage Monday items",
	}

	cmd.AddCommand(newItemsListCommand(bridgeContainer))
	cmd.AddCommand(newItemsAddCommand(bridgeContainer))
	cmd.AddCommand(newItemsUpdateCommand(bridgeContainer))
	cmd.AddCommand(newItemsRemoveCommand(bridgeContainer))

	return cmd
}

func newItemsListCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <board-id>",
		Short: "List the items of a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				items, err := client.ListItems(ctx, email, args[0])
				if err != nil {
					return err
				}

				fmt.Println(frontend.RenderItems(items))
				return nil
			})
		},
	}

	addEmailFlag(cmd)

	return cmd
}

func newItemsAddCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <board-id> <name>",
		Short: "Create an item on a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				if _, err := client.CreateItem(ctx, email, args[0], args[1]); err != nil {
					return err
				}

				fmt.Println(frontend.RenderOK(fmt.Sprintf("Created item %q on board %s", args[1], args[0])))
				return nil
			})
		},
	}

	addEmailFlag(cmd)

	return cmd
}

func newItemsUpdateCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Update an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := itemUpdateFromFlags(cmd, args[0])
			if err != nil {
				return err
			}

			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				if _, err := client.UpdateItem(ctx, email, req); err != nil {
					return err
				}

				fmt.Println(frontend.RenderOK(fmt.Sprintf("Updated item %s", args[0])))
				return nil
			})
		},
	}

	addEmailFlag(cmd)
	cmd.Flags().String("name", "", "New item name")
	cmd.Flags().String("board-id", "", "Board the item belongs to")
	cmd.Flags().String("columns", "", `Column values as JSON, e.g. '{"status":{"label":"Done"}}'`)

	return cmd
}

func newItemsRemoveCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, bridgeContainer, func(ctx context.Context, client *bridge.Client, email string) error {
				if _, err := client.DeleteItem(ctx, email, args[0]); err != nil {
					return err
				}

				fmt.Println(frontend.RenderOK(fmt.Sprintf("Deleted item %s", args[0])))
				return nil
			})
		},
	}

	addEmailFlag(cmd)

	return cmd
}

func itemUpdateFromFlags(cmd *cobra.Command, itemID string) (bridge.UpdateItemRequest, error) {
	req := bridge.UpdateItemRequest{ID: bridge.FlexibleID(itemID)}

	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		req.Name = &name
	}

	if cmd.Flags().Changed("board-id") {
		boardID, _ := cmd.Flags().GetString("board-id")
		id := bridge.FlexibleID(boardID)
		req.BoardID = &id
	}

	if cmd.Flags().Changed("columns") {
		raw, _ := cmd.Flags().GetString("columns")

		var columns any
		if err := json.Unmarshal([]byte(raw), &columns); err != nil {
			return req, fmt.Errorf("--columns must be valid JSON: %w", err)
		}
		req.ColumnValues = columns
	}

	if req.Name == nil && req.BoardID == nil && req.ColumnValues == nil {
		return req, fmt.Errorf("nothing to update: pass --name, --board-id or --columns")
	}

	return req, nil
}
