// Package catalog drives the paginated book listing.
package catalog

import (
	"context"
	"log/slog"

	"github.com/logiksutra/bookshelf-cli/internal/domain"
)

// Gateway is the slice of the API client the pager uses.
type Gateway interface {
	ListBooks(ctx context.Context, page, limit int) (*domain.BookPage, error)
}

// Pager tracks the current and total page of the catalogue and drives
// refetches on navigation.
//
// Failure policy: a failed fetch leaves the page counters untouched and
// keeps the last successful page's books (stale but consistent). Only a
// failed initial load yields an empty book list.
type Pager struct {
	gateway  Gateway
	pageSize int
	logger   *slog.Logger

	currentPage int
	totalPages  int
	books       []domain.Book
	loaded      bool
}

// NewPager creates a pager with the configured page size. The page size
// is fixed for the pager's lifetime.
func NewPager(gateway Gateway, pageSize int, logger *slog.Logger) *Pager {
	if pageSize < 1 {
		pageSize = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pager{
		gateway:     gateway,
		pageSize:    pageSize,
		logger:      logger,
		currentPage: 1,
		totalPages:  1,
		books:       []domain.Book{},
	}
}

// GoToPage fetches page n. Out-of-bounds requests are a no-op: no
// fetch, no state change, no error.
func (p *Pager) GoToPage(ctx context.Context, n int) error {
	if n < 1 || n > p.totalPages {
		return nil
	}

	page, err := p.gateway.ListBooks(ctx, n, p.pageSize)
	if err != nil {
		if !p.loaded {
			// Initial load failure: nothing to stay stale on.
			p.books = []domain.Book{}
		}
		return err
	}

	totalPages := page.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}

	p.totalPages = totalPages
	p.currentPage = n
	// The catalogue may have shrunk between two fetches; never leave
	// currentPage pointing past totalPages.
	if p.currentPage > p.totalPages {
		p.currentPage = p.totalPages
	}
	p.books = page.Books
	p.loaded = true
	return nil
}

// Refresh refetches the current page. Pure refetch: a second call with
// unchanged server state yields identical books and totals.
func (p *Pager) Refresh(ctx context.Context) error {
	return p.GoToPage(ctx, p.currentPage)
}

// CurrentPage returns the 1-based current page number.
func (p *Pager) CurrentPage() int {
	return p.currentPage
}

// TotalPages returns the last known page count. At least 1.
func (p *Pager) TotalPages() int {
	return p.totalPages
}

// Books returns the books of the last successfully fetched page.
func (p *Pager) Books() []domain.Book {
	return p.books
}

// PageSize returns the configured page size.
func (p *Pager) PageSize() int {
	return p.pageSize
}
