// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/mkotlyarov/todo-items-service/internal/model"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// TodoService defines the todo-item use cases.
type TodoService interface {
	// ListTodos pages through the store. Malformed page parameters are
	// clamped, never rejected; this call only fails on store errors.
	ListTodos(ctx context.Context, page PageRequest) (PagedTodos, error)
	GetTodo(ctx context.Context, id int64) (model.TodoItem, error)
	CreateTodo(ctx context.Context, name string, completed bool) (model.TodoItem, error)
	// ReplaceTodo overwrites the record at pathID with item. The body id
	// must match pathID; a store-reported concurrent-update conflict is
	// resolved by re-checking existence.
	ReplaceTodo(ctx context.Context, pathID int64, item model.TodoItem) error
	DeleteTodo(ctx context.Context, id int64) error
}
