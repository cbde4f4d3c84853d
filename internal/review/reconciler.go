// Package review decides between creating and updating a review so the
// at-most-one-review-per-user invariant holds on every submit, and keeps
// the local copy of a book's review state consistent with the server.
package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/logiksutra/bookshelf-cli/internal/domain"
	apperrors "github.com/logiksutra/bookshelf-cli/internal/errors"
	"github.com/logiksutra/bookshelf-cli/internal/validation"
)

// Gateway is the slice of the API client the reconciler drives.
type Gateway interface {
	GetBookReviews(ctx context.Context, bookID string) (*domain.BookReviews, error)
	CreateReview(ctx context.Context, bookID string, rating int, reviewText string) error
	UpdateReview(ctx context.Context, reviewID string, rating int, reviewText string) error
	DeleteReview(ctx context.Context, reviewID string) error
}

// SessionSource supplies the current session. Re-read on every use.
type SessionSource interface {
	Current() domain.Session
}

// submission is the validated shape of a review submit.
type submission struct {
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	ReviewText string `json:"reviewText" validate:"required"`
}

// Reconciler tracks one book's review state for the current user.
//
// All mutations follow the same shape: validate locally, issue exactly
// one call, and on success refetch the authoritative server state. The
// local state never changes on a failed mutation, and aggregates are
// never derived from local deltas.
type Reconciler struct {
	gateway  Gateway
	sessions SessionSource
	validate *validation.Validator
	logger   *slog.Logger

	bookID  string
	book    domain.Book
	reviews []domain.Review
	byUser  map[string]domain.Review
	average float64
	count   int
	loaded  bool
}

// NewReconciler creates a reconciler over the given gateway and session.
func NewReconciler(gateway Gateway, sessions SessionSource, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reconciler{
		gateway:  gateway,
		sessions: sessions,
		validate: validation.New(),
		logger:   logger,
	}
}

// Load fetches the book with its full review list and rebuilds the
// keyed lookup. On failure the previous state is kept.
func (r *Reconciler) Load(ctx context.Context, bookID string) error {
	result, err := r.gateway.GetBookReviews(ctx, bookID)
	if err != nil {
		return err
	}
	return r.apply(bookID, result)
}

// apply installs a server response as the current state.
// A user appearing twice in the review list breaks the one-review-per-
// user invariant; that is surfaced, never silently resolved by taking
// the first match.
func (r *Reconciler) apply(bookID string, result *domain.BookReviews) error {
	byUser := make(map[string]domain.Review, len(result.Reviews))
	for _, rev := range result.Reviews {
		if prev, dup := byUser[rev.UserID]; dup {
			r.logger.Error("duplicate review for user",
				"book_id", bookID,
				"user_id", rev.UserID,
				"review_ids", []string{prev.ID, rev.ID},
			)
			return apperrors.Integrityf(
				"server returned multiple reviews for user %s on book %s (%s, %s)",
				rev.UserID, bookID, prev.ID, rev.ID,
			)
		}
		byUser[rev.UserID] = rev
	}

	r.bookID = bookID
	r.book = result.Book
	r.reviews = result.Reviews
	r.byUser = byUser
	r.average = result.AverageRating
	r.count = result.ReviewsCount
	r.loaded = true
	return nil
}

// Book returns the loaded book.
func (r *Reconciler) Book() domain.Book {
	return r.book
}

// Reviews returns the loaded review list in server order.
func (r *Reconciler) Reviews() []domain.Review {
	return r.reviews
}

// Aggregates returns the server-computed average rating and review
// count from the last successful fetch.
func (r *Reconciler) Aggregates() (average float64, count int) {
	return r.average, r.count
}

// Current returns the current user's review and whether one exists.
// Identification is an exact match of the review's user id against the
// session user id via the keyed lookup.
func (r *Reconciler) Current() (domain.Review, bool) {
	sess := r.sessions.Current()
	if !sess.IsAuthenticated() {
		return domain.Review{}, false
	}
	rev, ok := r.byUser[sess.User.ID]
	return rev, ok
}

// Submit creates or updates the current user's review.
//
// Rating must be an integer in [1,5] and text non-empty after trimming;
// anything else fails validation before a single byte goes out. When a
// review already exists the update is keyed by its id, so the id is
// stable across resubmissions.
func (r *Reconciler) Submit(ctx context.Context, rating int, reviewText string) error {
	sess := r.sessions.Current()
	if !sess.IsAuthenticated() {
		return apperrors.AuthRequired("log in to submit a review")
	}
	if !r.loaded {
		return apperrors.Internal("no book loaded")
	}

	sub := submission{Rating: rating, ReviewText: strings.TrimSpace(reviewText)}
	if err := r.validate.Validate(sub); err != nil {
		return err
	}

	existing, hasReview := r.byUser[sess.User.ID]
	var err error
	if hasReview {
		err = r.gateway.UpdateReview(ctx, existing.ID, sub.Rating, sub.ReviewText)
	} else {
		err = r.gateway.CreateReview(ctx, r.bookID, sub.Rating, sub.ReviewText)
	}
	if err != nil {
		// State unchanged; the caller keeps its form values.
		return err
	}

	// Refetch only after the mutation completed. Aggregates come from
	// the server's answer, never from local increments.
	return r.Load(ctx, r.bookID)
}

// Delete removes the current user's review. A no-op when none exists;
// there is no way to delete another user's review from here.
func (r *Reconciler) Delete(ctx context.Context) error {
	sess := r.sessions.Current()
	if !sess.IsAuthenticated() {
		return apperrors.AuthRequired("log in to delete a review")
	}

	existing, hasReview := r.byUser[sess.User.ID]
	if !hasReview {
		return nil
	}

	if err := r.gateway.DeleteReview(ctx, existing.ID); err != nil {
		return err
	}

	return r.Load(ctx, r.bookID)
}
