package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/logiksutra/bookshelf-cli/internal/domain"
)

// GetBookReviews fetches a book together with its full review list and
// server-computed aggregates. Public; no credential attached.
func (c *Client) GetBookReviews(ctx context.Context, bookID string) (*domain.BookReviews, error) {
	var raw rawBookReviews
	err := c.do(ctx, http.MethodGet, "/api/books/"+url.PathEscape(bookID)+"/reviews", nil, &raw, requestOptions{
		op:       "getBookReviews",
		fallback: "Failed to fetch book details. Please try again.",
	})
	if err != nil {
		return nil, err
	}

	result := raw.toDomain()
	return &result, nil
}

// CreateReview submits a new review for a book. The server assigns the
// review id and derives the author from the credential.
func (c *Client) CreateReview(ctx context.Context, bookID string, rating int, reviewText string) error {
	body := createReviewRequest{BookID: bookID, Rating: rating, ReviewText: reviewText}
	return c.do(ctx, http.MethodPost, "/api/reviews", body, nil, requestOptions{
		auth:     true,
		op:       "createReview",
		fallback: "Failed to submit review. Please try again.",
	})
}

// UpdateReview replaces the rating and text of an existing review,
// keyed by its id.
func (c *Client) UpdateReview(ctx context.Context, reviewID string, rating int, reviewText string) error {
	body := updateReviewRequest{Rating: rating, ReviewText: reviewText}
	return c.do(ctx, http.MethodPut, "/api/reviews/"+url.PathEscape(reviewID), body, nil, requestOptions{
		auth:     true,
		op:       "updateReview",
		fallback: "Failed to submit review. Please try again.",
	})
}

// DeleteReview removes a review by id.
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	return c.do(ctx, http.MethodDelete, "/api/reviews/"+url.PathEscape(reviewID), nil, nil, requestOptions{
		auth:     true,
		op:       "deleteReview",
		fallback: "Failed to delete review. Please try again.",
	})
}
