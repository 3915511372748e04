package mondayintegration

import (
	"context"
	"fmt"

	"github.com/flowbaker/alloybridge/pkg/domain"
	"github.com/rs/zerolog/log"
)

const (
	MondayActionType_ListBoards  domain.ActionID = "listBoards"
	MondayActionType_CreateBoard domain.ActionID = "createBoard"
	MondayActionType_UpdateBoard domain.ActionID = "updateBoard"
	MondayActionType_DeleteBoard domain.ActionID = "deleteBoard"
	MondayActionType_ListItems   domain.ActionID = "listItems"
	MondayActionType_CreateItem  domain.ActionID = "createItem"
	MondayActionType_UpdateItem  domain.ActionID = "updateItem"
	MondayActionType_DeleteItem  domain.ActionID = "deleteItem"
)

const (
	defaultBoardKind    = "public"
	boardAttributeName  = "name"
	mondaySchemaVersion = "2025-06"
)

var responseSchemas = map[domain.ActionID]domain.ResponseSchema{
	MondayActionType_ListBoards:  envelopeSchema(MondayActionType_ListBoards, "boards"),
	MondayActionType_CreateBoard: envelopeSchema(MondayActionType_CreateBoard, "create_board"),
	MondayActionType_UpdateBoard: envelopeSchema(MondayActionType_UpdateBoard, "update_board"),
	MondayActionType_DeleteBoard: envelopeSchema(MondayActionType_DeleteBoard, "delete_board"),
	MondayActionType_ListItems:   envelopeSchema(MondayActionType_ListItems, "boards[0].items_page.items"),
	MondayActionType_CreateItem:  envelopeSchema(MondayActionType_CreateItem, "create_item"),
	MondayActionType_UpdateItem: {
		Action:  MondayActionType_UpdateItem,
		Version: mondaySchemaVersion,
		Paths:   []string{"responseData.data", "data"},
	},
	MondayActionType_DeleteItem: envelopeSchema(MondayActionType_DeleteItem, "delete_item"),
}

// envelopeSchema reads field from the GraphQL data envelope, wrapped in
// responseData or not.
func envelopeSchema(action domain.ActionID, field string) domain.ResponseSchema {
	return domain.ResponseSchema{
		Action:  action,
		Version: mondaySchemaVersion,
		Paths: []string{
			fmt.Sprintf("responseData.data.%s", field),
			fmt.Sprintf("data.%s", field),
		},
	}
}

// SchemaFor returns the response schema registered for action.
func SchemaFor(action domain.ActionID) (domain.ResponseSchema, bool) {
	schema, ok := responseSchemas[action]
	return schema, ok
}

var (
	_ domain.BoardService = (*MondayIntegration)(nil)
	_ domain.ItemService  = (*MondayIntegration)(nil)
)

type MondayIntegration struct {
	executor domain.ActionExecutor
}

type MondayIntegrationDependencies struct {
	Executor domain.ActionExecutor
}

func NewMondayIntegration(deps MondayIntegrationDependencies) *MondayIntegration {
	return &MondayIntegration{
		executor: deps.Executor,
	}
}

func (i *MondayIntegration) ListBoards(ctx context.Context, userID string) ([]domain.Board, error) {
	response, err := i.execute(ctx, MondayActionType_ListBoards, domain.ActionParams{UserID: userID})
	if err != nil {
		return nil, err
	}

	boards, err := domain.ExtractInto[[]domain.Board](responseSchemas[MondayActionType_ListBoards], response)
	if err != nil {
		return nil, err
	}

	if boards == nil {
		boards = []domain.Board{}
	}

	domain.SortBoardsByUpdatedAt(boards)

	log.Debug().Str("user_id", userID).Int("count", len(boards)).Msg("Monday: listed boards")

	return boards, nil
}

func (i *MondayIntegration) CreateBoard(ctx context.Context, userID, name string) (any, error) {
	return i.executeAndExtract(ctx, MondayActionType_CreateBoard, domain.ActionParams{
		UserID: userID,
		RequestBody: map[string]any{
			"board_name": name,
			"board_kind": defaultBoardKind,
		},
	})
}

func (i *MondayIntegration) UpdateBoard(ctx context.Context, userID, boardID, name string) (any, error) {
	return i.executeAndExtract(ctx, MondayActionType_UpdateBoard, domain.ActionParams{
		UserID: userID,
		RequestBody: map[string]any{
			"board_id":        boardID,
			"board_attribute": boardAttributeName,
			"new_value":       name,
		},
	})
}

func (i *MondayIntegration) DeleteBoard(ctx context.Context, userID, boardID string) (any, error) {
	return i.executeAndExtract(ctx, MondayActionType_DeleteBoard, domain.ActionParams{
		UserID: userID,
		RequestBody: map[string]any{
			"board_id": boardID,
		},
	})
}

func (i *MondayIntegration) ListItems(ctx context.Context, userID, boardID string) ([]domain.Item, error) {
	response, err := i.execute(ctx, MondayActionType_ListItems, domain.ActionParams{
		UserID: userID,
		QueryParameters: map[string]any{
			"board_id": boardID,
		},
	})
	if err != nil {
		return nil, err
	}

	items, err := domain.ExtractInto[[]domain.Item](responseSchemas[MondayActionType_ListItems], response)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []domain.Item{}
	}

	log.Debug().Str("board_id", boardID).Int("count", len(items)).Msg("Monday: listed items")

	return items, nil
}

func (i *MondayIntegration) CreateItem(ctx context.Context, userID, boardID, name string) (any, error) {
	return i.executeAndExtract(ctx, MondayActionType_CreateItem, domain.ActionParams{
		UserID: userID,
		RequestBody: map[string]any{
			"board_id":  boardID,
			"item_name": name,
		},
	})
}

// UpdateItem forwards only the fields present in update.
func (i *MondayIntegration) UpdateItem(ctx context.Context, userID, itemID string, update domain.ItemUpdate) (any, error) {
	body := map[string]any{
		"item_id": itemID,
	}

	if update.Name != nil {
		body["item_name"] = *update.Name
	}

	if update.BoardID != nil {
		body["board_id"] = *update.BoardID
	}

	if update.ColumnValues != nil {
		body["column_values"] = update.ColumnValues
	}

	return i.executeAndExtract(ctx, MondayActionType_UpdateItem, domain.ActionParams{
		UserID:      userID,
		RequestBody: body,
	})
}

func (i *MondayIntegration) DeleteItem(ctx context.Context, userID, itemID string) (any, error) {
	return i.executeAndExtract(ctx, MondayActionType_DeleteItem, domain.ActionParams{
		UserID: userID,
		RequestBody: map[string]any{
			"item_id": itemID,
		},
	})
}

func (i *MondayIntegration) execute(ctx context.Context, action domain.ActionID, params domain.ActionParams) (any, error) {
	return i.executor.Execute(ctx, domain.ConnectorMonday, action, params)
}

func (i *MondayIntegration) executeAndExtract(ctx context.Context, action domain.ActionID, params domain.ActionParams) (any, error) {
	response, err := i.execute(ctx, action, params)
	if err != nil {
		return nil, err
	}

	return responseSchemas[action].Extract(response)
}
