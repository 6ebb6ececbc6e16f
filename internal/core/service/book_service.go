package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
	"github.com/fullstacklabs/identity-api/internal/core/ports"
)

// BookService implements the role-gated books resource. Role enforcement
// happens at the route level; this service assumes an authenticated caller.
type BookService struct {
	repo   ports.BookRepository
	logger zerolog.Logger
}

func NewBookService(repo ports.BookRepository, logger zerolog.Logger) *BookService {
	return &BookService{repo: repo, logger: logger}
}

func (s *BookService) Create(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	title := strings.TrimSpace(input.Title)
	author := strings.TrimSpace(input.Author)
	if title == "" || author == "" {
		return nil, fmt.Errorf("%w: title and author are required", domain.ErrValidation)
	}

	book := &domain.Book{
		Title:     title,
		Author:    author,
		Year:      input.Year,
		CreatedBy: input.CreatedBy,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, book)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("book_id", created.ID).Str("created_by", created.CreatedBy).Msg("book created")
	return created, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	if id == "" {
		return nil, domain.ErrBookNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	return s.repo.List(ctx)
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrBookNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("book_id", id).Msg("book deleted")
	return nil
}
