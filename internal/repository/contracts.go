package repository

import (
	"context"

	"github.com/mkotlyarov/todo-items-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TodoRepository declares persistence operations for todo items.
// I return domain models and surface domain errors from errors.go rather than PG codes.
type TodoRepository interface {
	Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error)
	GetByID(ctx context.Context, id int64) (model.TodoItem, error)
	// List returns a window of items ordered by id ascending plus the total
	// row count. The count comes from its own query, not from the window,
	// so out-of-range pages still report the true total.
	List(ctx context.Context, p Page) (PageResult[model.TodoItem], error)
	// Replace overwrites all mutable fields of the row with the given id.
	// Returns ErrNotFound when no row was affected and ErrConflict when the
	// store reports a concurrent-update conflict.
	Replace(ctx context.Context, item model.TodoItem) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}
