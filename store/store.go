package store

import (
	"context"
	"errors"

	"taskman/models"
)

var (
	ErrTaskNotFound = errors.New("no task with given id found")
	ErrUserNotFound = errors.New("no user with given name found")
	ErrUserExists   = errors.New("user already exists")
)

// TaskStore is the repository contract for tasks. Missing ids come back as
// ErrTaskNotFound, never as a storage error.
type TaskStore interface {
	List(ctx context.Context, completed *bool) ([]models.Task, error)
	Get(ctx context.Context, id int) (models.Task, error)
	Create(ctx context.Context, in models.CreateTask) (models.Task, error)
	Update(ctx context.Context, id int, in models.UpdateTask) (models.Task, error)
	Delete(ctx context.Context, id int) error
}

type UserStore interface {
	CreateUser(ctx context.Context, username, hashedPassword string) (models.User, error)
	UserByUsername(ctx context.Context, username string) (models.User, error)
}

type Store interface {
	TaskStore
	UserStore
}
