package controllers

import (
	"strings"

	"github.com/flowbaker/alloybridge/pkg/clients/bridge"
	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/gofiber/fiber/v3"
)

type ItemsController struct {
	items domain.ItemService
}

type ItemsControllerDependencies struct {
	ItemService domain.ItemService
}

func NewItemsController(deps ItemsControllerDependencies) *ItemsController {
	return &ItemsController{
		items: deps.ItemService,
	}
}

func (c *ItemsController) ListItems(ctx fiber.Ctx) error {
	boardID := ctx.Query("boardId")
	if boardID == "" {
		return domain.NewValidationError("Board ID is required")
	}

	items, err := c.items.ListItems(ctx.RequestCtx(), userIdentity(ctx), boardID)
	if err != nil {
		return err
	}

	return ctx.JSON(bridge.DataResponse[[]domain.Item]{Data: items})
}

func (c *ItemsController) CreateItem(ctx fiber.Ctx) error {
	boardID := ctx.Query("boardId")
	if boardID == "" {
		return domain.NewValidationError("Board ID is required")
	}

	var req bridge.CreateItemRequest

	if err := ctx.Bind().JSON(&req); err != nil {
		return invalidBody()
	}

	if strings.TrimSpace(req.Name) == "" {
		return domain.NewValidationError("Item name is required")
	}

	item, err := c.items.CreateItem(ctx.RequestCtx(), userIdentity(ctx), boardID, req.Name)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(bridge.DataResponse[any]{Data: item})
}

func (c *ItemsController) UpdateItem(ctx fiber.Ctx) error {
	var req bridge.UpdateItemRequest

	if err := ctx.Bind().JSON(&req); err != nil {
		return invalidBody()
	}

	if req.ID == "" {
		return domain.NewValidationError("Item ID is required")
	}

	update := domain.ItemUpdate{
		Name:         req.Name,
		ColumnValues: req.ColumnValues,
	}

	if req.BoardID != nil {
		boardID := req.BoardID.String()
		update.BoardID = &boardID
	}

	result, err := c.items.UpdateItem(ctx.RequestCtx(), userIdentity(ctx), req.ID.String(), update)
	if err != nil {
		return err
	}

	return ctx.JSON(bridge.DataResponse[any]{Data: result})
}

func (c *ItemsController) DeleteItem(ctx fiber.Ctx) error {
	itemID := ctx.Query("itemId")
	if itemID == "" {
		return domain.NewValidationError("Item ID is required")
	}

	result, err := c.items.DeleteItem(ctx.RequestCtx(), userIdentity(ctx), itemID)
	if err != nil {
		return err
	}

	return ctx.JSON(bridge.DataResponse[any]{Data: result})
}
