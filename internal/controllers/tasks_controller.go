package controllers

import (
	"strings"

	"github.com/flowbaker/alloybridge/pkg/clients/bridge"
	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

type TasksController struct {
	tasks domain.TaskService
}

type TasksControllerDependencies struct {
	TaskService domain.TaskService
}

func NewTasksController(deps TasksControllerDependencies) *TasksController {
	return &TasksController{
		tasks: deps.TaskService,
	}
}

func (c *TasksController) ListTasks(ctx fiber.Ctx) error {
	userID := userIdentity(ctx)

	tasks, err := c.tasks.ListTasks(ctx.RequestCtx(), userID)
	if err != nil {
		return err
	}

	log.Info().Str("user_id", userID).Int("count", len(tasks)).Msg("Listed tasks")

	return ctx.JSON(bridge.DataResponse[[]domain.Task]{Data: tasks})
}

func (c *TasksController) CreateTask(ctx fiber.Ctx) error {
	var req bridge.CreateTaskRequest

	if err := ctx.Bind().JSON(&req); err != nil {
		return invalidBody()
	}

	if strings.TrimSpace(req.Name) == "" {
		return domain.NewValidationError("Task name is required")
	}

	task, err := c.tasks.CreateTask(ctx.RequestCtx(), userIdentity(ctx), req.Name)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(bridge.DataResponse[any]{Data: task})
}

func (c *TasksController) UpdateTask(ctx fiber.Ctx) error {
	var req bridge.UpdateTaskRequest

	if err := ctx.Bind().JSON(&req); err != nil {
		return invalidBody()
	}

	if req.ID == "" {
		return domain.NewValidationError("Task ID is required")
	}

	result, err := c.tasks.UpdateTask(ctx.RequestCtx(), userIdentity(ctx), req.ID.String(), domain.TaskUpdate{
		Name:         req.Name,
		ColumnValues: req.ColumnValues,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(bridge.DataResponse[any]{Data: result})
}

func (c *TasksController) DeleteTask(ctx fiber.Ctx) error {
	taskID := ctx.Query("taskId")
	if taskID == "" {
		return domain.NewValidationError("Task ID is required")
	}

	result, err := c.tasks.DeleteTask(ctx.RequestCtx(), userIdentity(ctx), taskID)
	if err != nil {
		return err
	}

	return ctx.JSON(bridge.DataResponse[any]{Data: result})
}
