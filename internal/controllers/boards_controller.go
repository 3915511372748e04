package controllers

import (
	"strings"

	"github.com/flowbaker/alloybridge/pkg/clients/bridge"
	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

type BoardsController struct {
	boards domain.BoardService
}

type BoardsControllerDependencies struct {
	BoardService domain.BoardService
}

func NewBoardsController(deps BoardsControllerDependencies) *BoardsController {
	return &BoardsController{
		boards: deps.BoardService,
	}
}

func (c *BoardsController) ListBoards(ctx fiber.Ctx) error {
	userID := userIdentity(ctx)

	boards, err := c.boards.ListBoards(ctx.RequestCtx(), userID)
	if err != nil {
		return err
	}

	log.Info().Str("user_id", userID).Int("count", len(boards)).Msg("Listed boards")

	return ctx.JSON(bridge.DataResponse[[]domain.Board]{Data: boards})
}

func (c *BoardsController) CreateBoard(ctx fiber.Ctx) error {
	var req bridge.CreateBoardRequest

	if err := ctx.Bind().JSON(&req); err != nil {
		return invalidBody()
	}

	if strings.TrimSpace(req.Name) == "" {
		return domain.NewValidationError("Board name is required")
	}

	board, err := c.boards.CreateBoard(ctx.RequestCtx(), userIdentity(ctx), req.Name)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(bridge.DataResponse[any]{Data: board})
}

func (c *BoardsController) UpdateBoard(ctx fiber.Ctx) error {
	var req bridge.UpdateBoardRequest

	if err := ctx.Bind().JSON(&req); err != nil {
		return invalidBody()
	}

	if req.ID == "" {
		return domain.NewValidationError("Board ID is required")
	}

	if strings.TrimSpace(req.Name) == "" {
		return domain.NewValidationError("Board name is required")
	}

	board, err := c.boards.UpdateBoard(ctx.RequestCtx(), userIdentity(ctx), req.ID.String(), req.Name)
	if err != nil {
		return err
	}

	return ctx.JSON(bridge.DataResponse[any]{Data: board})
}

func (c *BoardsController) DeleteBoard(ctx fiber.Ctx) error {
	boardID := ctx.Query("boardId")
	if boardID == "" {
		return domain.NewValidationError("Board ID is required")
	}

	result, err := c.boards.DeleteBoard(ctx.RequestCtx(), userIdentity(ctx), boardID)
	if err != nil {
		return err
	}

	return ctx.JSON(bridge.DataResponse[any]{Data: result})
}
