package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
	"github.com/fullstacklabs/identity-api/internal/core/ports"
)

type stubBookService struct {
	createFn func(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error)
	getFn    func(ctx context.Context, id string) (*domain.Book, error)
	listFn   func(ctx context.Context) ([]domain.Book, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubBookService) Create(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.getFn(ctx, id)
}

func (s *stubBookService) List(ctx context.Context) ([]domain.Book, error) {
	return s.listFn(ctx)
}

func (s *stubBookService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestBookHandler_List(t *testing.T) {
	e := newEcho()
	stub := &stubBookService{
		listFn: func(ctx context.Context) ([]domain.Book, error) {
			return []domain.Book{
				{ID: "b1", Title: "A", Author: "X", CreatedBy: "u1", CreatedAt: time.Now().UTC()},
				{ID: "b2", Title: "B", Author: "Y", CreatedBy: "u1", CreatedAt: time.Now().UTC()},
			}, nil
		},
	}
	handler := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listBooksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 2 || len(resp.Data) != 2 {
		t.Fatalf("unexpected list payload: %+v", resp)
	}
}

func TestBookHandler_Get_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubBookService{
		getFn: func(ctx context.Context, id string) (*domain.Book, error) {
			return nil, domain.ErrBookNotFound
		},
	}
	handler := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/books/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Get(c); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound to propagate, got %v", err)
	}
}

func TestBookHandler_Create(t *testing.T) {
	e := newEcho()
	stub := &stubBookService{
		createFn: func(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
			if input.CreatedBy != "admin-1" {
				t.Fatalf("created_by must come from the request identity, got %q", input.CreatedBy)
			}
			return &domain.Book{ID: "b3", Title: input.Title, Author: input.Author, Year: input.Year, CreatedBy: input.CreatedBy}, nil
		},
	}
	handler := NewBookHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/books", `{"title":"SICP","author":"Abelson","year":1985}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "admin-1")
	c.Set("email", "admin@example.com")
	c.Set("role", domain.RoleAdmin)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestBookHandler_Create_Validation(t *testing.T) {
	e := newEcho()
	stub := &stubBookService{
		createFn: func(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	}
	handler := NewBookHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/books", `{"author":"nobody"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "admin-1")
	c.Set("role", domain.RoleAdmin)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestBookHandler_Delete(t *testing.T) {
	e := newEcho()
	deleted := ""
	stub := &stubBookService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	handler := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/books/b1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "b1" {
		t.Fatalf("expected delete of b1, got %q", deleted)
	}
}
