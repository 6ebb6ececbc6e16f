package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")

// Book is the role-gated sample resource: any authenticated identity can
// read, only admins can create or delete.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Year      int       `json:"year,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
