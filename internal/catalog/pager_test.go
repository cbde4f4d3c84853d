package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiksutra/bookshelf-cli/internal/domain"
	apperrors "github.com/logiksutra/bookshelf-cli/internal/errors"
)

// fakeGateway serves a fixed catalogue of pages.
type fakeGateway struct {
	pages      map[int][]domain.Book
	totalPages int
	err        error
	calls      int
	lastLimit  int
}

func (f *fakeGateway) ListBooks(_ context.Context, page, limit int) (*domain.BookPage, error) {
	f.calls++
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return &domain.BookPage{Books: f.pages[page], TotalPages: f.totalPages}, nil
}

func threePageCatalogue() *fakeGateway {
	pages := make(map[int][]domain.Book)
	for p := 1; p <= 3; p++ {
		for i := range 5 {
			pages[p] = append(pages[p], domain.Book{
				ID:    fmt.Sprintf("b%d-%d", p, i),
				Title: fmt.Sprintf("Book %d-%d", p, i),
			})
		}
	}
	return &fakeGateway{pages: pages, totalPages: 3}
}

func TestGoToPage_InitialLoad(t *testing.T) {
	gw := threePageCatalogue()
	p := NewPager(gw, 5, nil)

	require.NoError(t, p.GoToPage(context.Background(), 1))

	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 3, p.TotalPages())
	assert.Len(t, p.Books(), 5)
	assert.Equal(t, 5, gw.lastLimit)
}

func TestGoToPage_Navigation(t *testing.T) {
	gw := threePageCatalogue()
	p := NewPager(gw, 5, nil)
	require.NoError(t, p.GoToPage(context.Background(), 1))

	require.NoError(t, p.GoToPage(context.Background(), 2))

	assert.Equal(t, 2, p.CurrentPage())
	assert.Equal(t, "b2-0", p.Books()[0].ID)
}

func TestGoToPage_OutOfBoundsIsNoop(t *testing.T) {
	gw := threePageCatalogue()
	p := NewPager(gw, 5, nil)
	require.NoError(t, p.GoToPage(context.Background(), 1))
	callsBefore := gw.calls

	tests := []struct {
		name string
		page int
	}{
		{"zero", 0},
		{"negative", -1},
		{"past last page", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, p.GoToPage(context.Background(), tt.page))
			assert.Equal(t, callsBefore, gw.calls, "no fetch on out-of-bounds navigation")
			assert.Equal(t, 1, p.CurrentPage())
			assert.Len(t, p.Books(), 5)
		})
	}
}

func TestGoToPage_RefetchIsIdempotent(t *testing.T) {
	gw := threePageCatalogue()
	p := NewPager(gw, 5, nil)
	require.NoError(t, p.GoToPage(context.Background(), 2))
	firstBooks := p.Books()

	require.NoError(t, p.GoToPage(context.Background(), 2))

	assert.Equal(t, firstBooks, p.Books())
	assert.Equal(t, 2, p.CurrentPage())
	assert.Equal(t, 3, p.TotalPages())
}

func TestRefresh(t *testing.T) {
	gw := threePageCatalogue()
	p := NewPager(gw, 5, nil)
	require.NoError(t, p.GoToPage(context.Background(), 3))

	require.NoError(t, p.Refresh(context.Background()))
	assert.Equal(t, 3, p.CurrentPage())
}

func TestGoToPage_InitialLoadFailureYieldsEmpty(t *testing.T) {
	gw := &fakeGateway{err: &apperrors.Error{Code: apperrors.CodeNetwork, Message: "down"}}
	p := NewPager(gw, 5, nil)

	err := p.GoToPage(context.Background(), 1)
	require.Error(t, err)

	assert.Empty(t, p.Books())
	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 1, p.TotalPages())
}

func TestGoToPage_LaterFailureKeepsStaleState(t *testing.T) {
	gw := threePageCatalogue()
	p := NewPager(gw, 5, nil)
	require.NoError(t, p.GoToPage(context.Background(), 2))

	gw.err = &apperrors.Error{Code: apperrors.CodeNetwork, Message: "down"}
	err := p.GoToPage(context.Background(), 3)
	require.Error(t, err)

	// Stale but consistent: the last successful page is kept and the
	// counters do not move.
	assert.Equal(t, 2, p.CurrentPage())
	assert.Equal(t, 3, p.TotalPages())
	assert.Equal(t, "b2-0", p.Books()[0].ID)
}

func TestGoToPage_ClampsWhenCatalogueShrinks(t *testing.T) {
	gw := threePageCatalogue()
	p := NewPager(gw, 5, nil)
	require.NoError(t, p.GoToPage(context.Background(), 3))

	// The server now reports fewer pages than the one just fetched.
	gw.totalPages = 2
	require.NoError(t, p.GoToPage(context.Background(), 3))

	assert.LessOrEqual(t, p.CurrentPage(), p.TotalPages())
	assert.Equal(t, 2, p.TotalPages())
}

func TestNewPager_Defaults(t *testing.T) {
	p := NewPager(&fakeGateway{}, 0, nil)

	assert.Equal(t, 1, p.PageSize())
	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 1, p.TotalPages())
	assert.Empty(t, p.Books())
}
