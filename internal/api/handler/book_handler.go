package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fullstacklabs/identity-api/internal/core/ports"
)

// BookHandler handles HTTP requests for the role-gated books resource.
// Authentication and the admin gate are applied at the route level.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// List handles GET /api/books.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listBooksResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	data := make([]bookResponse, 0, len(books))
	for i := range books {
		data = append(data, toBookResponse(&books[i]))
	}
	return c.JSON(http.StatusOK, listBooksResponse{Data: data, Total: len(data)})
}

// Get handles GET /api/books/:id.
//
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  bookResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// Create handles POST /api/books (admin only).
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookRequest  true  "Book details"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.service.Create(c.Request().Context(), ports.CreateBookInput{
		Title:     req.Title,
		Author:    req.Author,
		Year:      req.Year,
		CreatedBy: id.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toBookResponse(book))
}

// Delete handles DELETE /api/books/:id (admin only).
//
// @Summary      Delete a book
// @Tags         books
// @Security     BearerAuth
// @Param        id  path  string  true  "Book ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
