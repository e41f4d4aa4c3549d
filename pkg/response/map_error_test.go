package response_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/mkotlyarov/todo-items-service/internal/repository"
	"github.com/mkotlyarov/todo-items-service/internal/service"
	"github.com/mkotlyarov/todo-items-service/pkg/response"
)

// invalidStub mimics the service's aggregated validation error.
type invalidStub struct{ fe []service.FieldError }

func (e *invalidStub) Error() string                { return service.ErrInvalidInput.Error() }
func (e *invalidStub) Unwrap() error                { return service.ErrInvalidInput }
func (e *invalidStub) Fields() []service.FieldError { return e.fe }

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"nil is ok", nil, http.StatusOK, "ok"},
		{"not found", repository.ErrNotFound, http.StatusNotFound, "not_found"},
		{"already exists", repository.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"unresolved conflict is fatal", repository.ErrConflict, http.StatusInternalServerError, "conflict"},
		{"wrapped not found", errorsJoin(repository.ErrNotFound), http.StatusNotFound, "not_found"},
		{"unknown is internal", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := response.MapError(tc.err)
			if status != tc.wantStatus || payload.Error != tc.wantCode {
				t.Fatalf("MapError(%v) = %d %q, want %d %q", tc.err, status, payload.Error, tc.wantStatus, tc.wantCode)
			}
		})
	}
}

func errorsJoin(err error) error {
	return errors.Join(errors.New("context"), err)
}

func TestMapError_InvalidInputCarriesFieldErrors(t *testing.T) {
	err := &invalidStub{fe: []service.FieldError{{Field: "name", Message: "must not be empty"}}}
	status, payload := response.MapError(err)
	if status != http.StatusBadRequest || payload.Error != "invalid_input" {
		t.Fatalf("unexpected mapping: %d %+v", status, payload)
	}
	if len(payload.FieldErrors) != 1 || payload.FieldErrors[0].Field != "name" {
		t.Fatalf("field errors lost: %+v", payload.FieldErrors)
	}
}
