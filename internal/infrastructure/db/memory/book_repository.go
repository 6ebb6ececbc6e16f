package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
)

type BookRepository struct {
	mu    sync.RWMutex
	books map[string]*domain.Book
}

func NewBookRepository() *BookRepository {
	return &BookRepository{books: make(map[string]*domain.Book)}
}

func (r *BookRepository) Insert(_ context.Context, book *domain.Book) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *book
	stored.ID = uuid.NewString()
	r.books[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *BookRepository) FindByID(_ context.Context, id string) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	out := *b
	return &out, nil
}

func (r *BookRepository) List(_ context.Context) ([]domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, *b)
	}
	return out, nil
}

func (r *BookRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}
