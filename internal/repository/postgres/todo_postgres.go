package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkotlyarov/todo-items-service/internal/model"
	"github.com/mkotlyarov/todo-items-service/internal/repository"
)

type todoRepository struct{ pool *pgxpool.Pool }

func NewTodoRepository(pool *pgxpool.Pool) repository.TodoRepository {
	return &todoRepository{pool: pool}
}

func (r *todoRepository) Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.TodoItem{}, err
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO todos (name, completed) VALUES ($1, $2)
		 RETURNING id, name, completed, created_at, updated_at`,
		item.Name, item.Completed,
	)
	var out model.TodoItem
	if err := row.Scan(&out.ID, &out.Name, &out.Completed, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.TodoItem{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *todoRepository) GetByID(ctx context.Context, id int64) (model.TodoItem, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.TodoItem{}, err
	}
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, completed, created_at, updated_at FROM todos WHERE id = $1`, id,
	)
	var out model.TodoItem
	if err := row.Scan(&out.ID, &out.Name, &out.Completed, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TodoItem{}, repository.ErrNotFound
		}
		return model.TodoItem{}, repository.MapPgError(err)
	}
	return out, nil
}

// List fetches an id-ordered window plus an independent total count.
// The explicit ORDER BY id is load-bearing: without a unique stable sort key,
// limit/offset windows can repeat or drop rows between calls.
func (r *todoRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.TodoItem], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.TodoItem]{}, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM todos`).Scan(&total); err != nil {
		return repository.PageResult[model.TodoItem]{}, repository.MapPgError(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, completed, created_at, updated_at
		 FROM todos
		 ORDER BY id
		 LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset,
	)
	if err != nil {
		return repository.PageResult[model.TodoItem]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.TodoItem]{Items: make([]model.TodoItem, 0, p.Limit), Total: total}
	for rows.Next() {
		var item model.TodoItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Completed, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return repository.PageResult[model.TodoItem]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, item)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.TodoItem]{}, repository.MapPgError(err)
	}
	return res, nil
}

func (r *todoRepository) Replace(ctx context.Context, item model.TodoItem) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE todos SET name = $2, completed = $3, updated_at = now() WHERE id = $1`,
		item.ID, item.Name, item.Completed,
	)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *todoRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Exists performs a lightweight check to see if a todo with the given ID exists.
func (r *todoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM todos WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

func (r *todoRepository) Count(ctx context.Context) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM todos`).Scan(&total); err != nil {
		return 0, repository.MapPgError(err)
	}
	return total, nil
}

var _ repository.TodoRepository = (*todoRepository)(nil)
