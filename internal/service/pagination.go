package service

import (
	"github.com/mkotlyarov/todo-items-service/internal/model"
	"github.com/mkotlyarov/todo-items-service/internal/repository"
)

const (
	// DefaultPageSize applies when the client sends no size or a size below 1.
	DefaultPageSize = 20
	// MaxPageSize caps the window a single request may pull.
	MaxPageSize = 100
)

// PageRequest carries untrusted 1-based page parameters from the transport layer.
type PageRequest struct {
	Number int
	Size   int
}

// Normalize clamps the request into valid bounds. Pagination here is
// forgiving: out-of-range values are corrected, never rejected, so invalid
// parameters can never reach offset arithmetic or the store.
func (p PageRequest) Normalize() PageRequest {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Window converts a normalized request into a repository limit/offset pair.
func (p PageRequest) Window() repository.Page {
	return repository.Page{
		Limit:  p.Size,
		Offset: (p.Number - 1) * p.Size,
	}
}

// PagedTodos is one computed page plus the metadata the HTTP layer exposes
// as response headers. Recomputed fresh per request, never cached.
type PagedTodos struct {
	Items      []model.TodoItem
	TotalItems int
	PageNumber int
	PageSize   int
	TotalPages int
}

// TotalPages is ceil(totalItems / pageSize); zero when the store is empty.
func TotalPages(totalItems, pageSize int) int {
	if totalItems == 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}
