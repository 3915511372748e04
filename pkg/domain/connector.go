package domain

import "context"

type BoardService interface {
	ListBoards(ctx context.Context, userID string) ([]Board, error)
	CreateBoard(ctx context.Context, userID, name string) (any, error)
	UpdateBoard(ctx context.Context, userID, boardID, name string) (any, error)
	DeleteBoard(ctx context.Context, userID, boardID string) (any, error)
}

type ItemService interface {
	ListItems(ctx context.Context, userID, boardID string) ([]Item, error)
	CreateItem(ctx context.Context, userID, boardID, name string) (any, error)
	UpdateItem(ctx context.Context, userID, itemID string, update ItemUpdate) (any, error)
	DeleteItem(ctx context.Context, userID, itemID string) (any, error)
}

type TaskService interface {
	ListTasks(ctx context.Context, userID string) ([]Task, error)
	CreateTask(ctx context.Context, userID, name string) (any, error)
	UpdateTask(ctx context.Context, userID, taskID string, update TaskUpdate) (any, error)
	DeleteTask(ctx context.Context, userID, taskID string) (any, error)
}
