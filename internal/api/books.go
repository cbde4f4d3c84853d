package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/logiksutra/bookshelf-cli/internal/domain"
)

// ListBooks fetches one page of the public catalogue.
func (c *Client) ListBooks(ctx context.Context, page, limit int) (*domain.BookPage, error) {
	path := fmt.Sprintf("/api/books?page=%d&limit=%d", page, limit)

	var raw rawBookList
	err := c.do(ctx, http.MethodGet, path, nil, &raw, requestOptions{
		op:       "listBooks",
		fallback: "Failed to fetch books. Please try again.",
	})
	if err != nil {
		return nil, err
	}

	books := make([]domain.Book, 0, len(raw.Books))
	for _, b := range raw.Books {
		books = append(books, b.toDomain())
	}
	return &domain.BookPage{Books: books, TotalPages: raw.TotalPages}, nil
}

// MyBooks fetches the books created by the current user.
func (c *Client) MyBooks(ctx context.Context) ([]domain.Book, error) {
	var raw rawBookList
	err := c.do(ctx, http.MethodGet, "/api/books/mybooks", nil, &raw, requestOptions{
		auth:     true,
		op:       "myBooks",
		fallback: "Failed to fetch your books. Please try again.",
	})
	if err != nil {
		return nil, err
	}

	books := make([]domain.Book, 0, len(raw.Books))
	for _, b := range raw.Books {
		books = append(books, b.toDomain())
	}
	return books, nil
}

// GetBook fetches a single book by id.
func (c *Client) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	var raw rawBook
	err := c.do(ctx, http.MethodGet, "/api/books/"+url.PathEscape(bookID), nil, &raw, requestOptions{
		auth:     true,
		op:       "getBook",
		fallback: "Failed to fetch book details. Please try again.",
	})
	if err != nil {
		return nil, err
	}

	book := raw.toDomain()
	return &book, nil
}

// CreateBook adds a new book owned by the current user.
func (c *Client) CreateBook(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
	var raw rawBook
	err := c.do(ctx, http.MethodPost, "/api/books", bookRequestFrom(input), &raw, requestOptions{
		auth:     true,
		op:       "createBook",
		fallback: "Failed to add book. Please try again.",
	})
	if err != nil {
		return nil, err
	}

	book := raw.toDomain()
	return &book, nil
}

// UpdateBook replaces the user-editable fields of a book.
func (c *Client) UpdateBook(ctx context.Context, bookID string, input domain.BookInput) (*domain.Book, error) {
	var raw rawBook
	err := c.do(ctx, http.MethodPut, "/api/books/"+url.PathEscape(bookID), bookRequestFrom(input), &raw, requestOptions{
		auth:     true,
		op:       "updateBook",
		fallback: "Failed to update book. Please try again.",
	})
	if err != nil {
		return nil, err
	}

	book := raw.toDomain()
	return &book, nil
}

// DeleteBook removes a book. Ownership is enforced server-side.
func (c *Client) DeleteBook(ctx context.Context, bookID string) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(bookID), nil, nil, requestOptions{
		auth:     true,
		op:       "deleteBook",
		fallback: "Failed to delete book. Please try again.",
	})
}

func bookRequestFrom(input domain.BookInput) bookRequest {
	return bookRequest{
		Title:       input.Title,
		Author:      input.Author,
		Genre:       input.Genre,
		Year:        input.Year,
		Description: input.Description,
	}
}
