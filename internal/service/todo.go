package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mkotlyarov/todo-items-service/internal/model"
	"github.com/mkotlyarov/todo-items-service/internal/repository"
	"github.com/rs/zerolog"
)

// todoService holds todo use-case logic: validation + orchestration, no transport / SQL details.
type todoService struct {
	repo repository.TodoRepository
	log  zerolog.Logger
}

func NewTodoService(repo repository.TodoRepository, logger zerolog.Logger) TodoService {
	l := logger.With().Str("module", "service").Str("component", "todo").Logger()
	return &todoService{repo: repo, log: l}
}

const maxNameLength = 100

// validateName enforces the data-model invariant: required, 1-100 characters.
func validateName(name string) []FieldError {
	var ferrs []FieldError
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if ln := len([]rune(name)); ln > maxNameLength {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 1 and 100"})
	}
	return ferrs
}

func (s *todoService) ListTodos(ctx context.Context, page PageRequest) (PagedTodos, error) {
	p := page.Normalize()
	res, err := s.repo.List(ctx, p.Window())
	if err != nil {
		s.log.Error().Err(err).Int("page_number", p.Number).Int("page_size", p.Size).Msg("list todos failed")
		return PagedTodos{}, err
	}
	return PagedTodos{
		Items:      res.Items,
		TotalItems: res.Total,
		PageNumber: p.Number,
		PageSize:   p.Size,
		TotalPages: TotalPages(res.Total, p.Size),
	}, nil
}

func (s *todoService) GetTodo(ctx context.Context, id int64) (model.TodoItem, error) {
	if id <= 0 {
		return model.TodoItem{}, repository.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *todoService) CreateTodo(ctx context.Context, name string, completed bool) (model.TodoItem, error) {
	start := time.Now()
	name = strings.TrimSpace(name)

	if err := newInvalidInput(validateName(name)); err != nil {
		s.log.Debug().Str("name_raw", name).Msg("todo validation failed")
		return model.TodoItem{}, err
	}

	out, err := s.repo.Create(ctx, model.TodoItem{Name: name, Completed: completed})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("name", name).Msg("create todo failed")
		return model.TodoItem{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("todo_id", out.ID).Msg("todo created")
	return out, nil
}

func (s *todoService) ReplaceTodo(ctx context.Context, pathID int64, item model.TodoItem) error {
	var ferrs []FieldError
	if item.ID != pathID {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must match the id in the path"})
	}
	item.Name = strings.TrimSpace(item.Name)
	ferrs = append(ferrs, validateName(item.Name)...)
	if err := newInvalidInput(ferrs); err != nil {
		// Rejected before any store round trip.
		return err
	}

	err := s.repo.Replace(ctx, item)
	if errors.Is(err, repository.ErrConflict) {
		// Concurrent modification: if the row vanished meanwhile the client
		// gets a plain 404; otherwise the conflict stays fatal.
		exists, exErr := s.repo.Exists(ctx, item.ID)
		if exErr != nil {
			s.log.Error().Err(exErr).Int64("todo_id", item.ID).Msg("existence re-check failed")
			return exErr
		}
		if !exists {
			return repository.ErrNotFound
		}
		s.log.Error().Err(err).Int64("todo_id", item.ID).Msg("concurrent update conflict")
		return err
	}
	return err
}

func (s *todoService) DeleteTodo(ctx context.Context, id int64) error {
	if id <= 0 {
		return repository.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("todo_id", id).Msg("delete todo failed")
		}
		return err
	}
	return nil
}
