package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/logiksutra/bookshelf-cli/internal/domain"
	"github.com/logiksutra/bookshelf-cli/internal/review"
	"github.com/logiksutra/bookshelf-cli/internal/validation"
)

func newBrowseCmd(app *App) *cobra.Command {
	var pageFlag int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the book catalogue page by page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetch := func(ctx context.Context) error {
				// The first fetch establishes the page count;
				// navigation past it is a no-op by contract.
				if err := app.Pager.GoToPage(ctx, 1); err != nil {
					return err
				}
				if pageFlag > 1 && pageFlag <= app.Pager.TotalPages() {
					return app.Pager.GoToPage(ctx, pageFlag)
				}
				return nil
			}

			render := func() error {
				if pageFlag > 1 && pageFlag > app.Pager.TotalPages() {
					fmt.Fprintf(cmd.OutOrStdout(), "No page %d (the catalogue has %d page(s)).\n",
						pageFlag, app.Pager.TotalPages())
					return nil
				}

				books := app.Pager.Books()
				if len(books) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No books found.")
					return nil
				}

				printBookTable(cmd, books)
				fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d\n", app.Pager.CurrentPage(), app.Pager.TotalPages())
				return nil
			}

			return app.runView(fetch, render)
		},
	}

	cmd.Flags().IntVar(&pageFlag, "page", 1, "page to show")
	return cmd
}

func newMyBooksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mybooks",
		Short: "List the books you created",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			books, err := app.Client.MyBooks(cmd.Context())
			if err != nil {
				return err
			}

			if len(books) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No books added yet. Use 'bookshelf book add' to add one.")
				return nil
			}

			printBookTable(cmd, books)
			return nil
		},
	}
}

func newBookCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Manage book entries",
	}

	cmd.AddCommand(
		newBookShowCmd(app),
		newBookAddCmd(app),
		newBookEditCmd(app),
		newBookRemoveCmd(app),
	)
	return cmd
}

func newBookShowCmd(app *App) *cobra.Command {
	var showReviews bool

	cmd := &cobra.Command{
		Use:   "show <book-id>",
		Short: "Show a book with its rating and reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := app.newReconciler()

			return app.runView(func(ctx context.Context) error {
				return rec.Load(ctx, args[0])
			}, func() error {
				renderBookDetails(cmd, rec, showReviews)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showReviews, "reviews", false, "list all reviews")
	return cmd
}

func renderBookDetails(cmd *cobra.Command, rec *review.Reconciler, showReviews bool) {
	out := cmd.OutOrStdout()
	book := rec.Book()
	average, count := rec.Aggregates()

	fmt.Fprintf(out, "%s\n", book.Title)
	fmt.Fprintf(out, "Author: %s\n", book.Author)
	fmt.Fprintf(out, "Genre: %s\n", orNA(book.Genre))
	fmt.Fprintf(out, "Published Year: %s\n", orNA(book.Year))
	fmt.Fprintf(out, "%s\n", orDefault(book.Description, "No description available"))
	if count > 0 {
		fmt.Fprintf(out, "Average Rating: %.1f / 5 (%d reviews)\n", average, count)
	} else {
		fmt.Fprintf(out, "Average Rating: N/A (0 reviews)\n")
	}

	if own, ok := rec.Current(); ok {
		fmt.Fprintf(out, "\nYour review: %s %s\n", stars(own.Rating), own.ReviewText)
	}

	if showReviews {
		fmt.Fprintf(out, "\nReviews (%d)\n", count)
		for _, r := range rec.Reviews() {
			name := orDefault(r.UserName, "Anonymous")
			fmt.Fprintf(out, "  %s %s - %s (%s)\n",
				stars(r.Rating), name, orDefault(r.ReviewText, "No review text"),
				r.CreatedAt.Format("2006-01-02"))
		}
	}
}

func newBookAddCmd(app *App) *cobra.Command {
	var input domain.BookInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new book",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			if err := validateBookInput(&input); err != nil {
				return err
			}

			book, err := app.Client.CreateBook(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (id %s)\n", book.Title, book.ID)
			return nil
		},
	}

	bindBookFlags(cmd, &input)
	return cmd
}

func newBookEditCmd(app *App) *cobra.Command {
	var input domain.BookInput

	cmd := &cobra.Command{
		Use:   "edit <book-id>",
		Short: "Edit one of your books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			// Start from the server's current copy so omitted flags
			// keep their value.
			current, err := app.Client.GetBook(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			merged := domain.BookInput{
				Title:       current.Title,
				Author:      current.Author,
				Genre:       current.Genre,
				Year:        current.Year,
				Description: current.Description,
			}
			applyChangedFlags(cmd, &merged, &input)

			if err := validateBookInput(&merged); err != nil {
				return err
			}

			book, err := app.Client.UpdateBook(cmd.Context(), args[0], merged)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", book.Title)
			return nil
		},
	}

	bindBookFlags(cmd, &input)
	return cmd
}

func newBookRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <book-id>",
		Short: "Delete one of your books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure you want to delete this book?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			if err := app.Client.DeleteBook(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Book deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

// bindBookFlags registers the user-editable book fields.
func bindBookFlags(cmd *cobra.Command, input *domain.BookInput) {
	cmd.Flags().StringVar(&input.Title, "title", "", "book title (required)")
	cmd.Flags().StringVar(&input.Author, "author", "", "author name (required)")
	cmd.Flags().StringVar(&input.Genre, "genre", "", "genre")
	cmd.Flags().StringVar(&input.Year, "year", "", "publication year")
	cmd.Flags().StringVar(&input.Description, "description", "", "description")
}

// applyChangedFlags copies only the flags the user actually set.
func applyChangedFlags(cmd *cobra.Command, dst, src *domain.BookInput) {
	if cmd.Flags().Changed("title") {
		dst.Title = src.Title
	}
	if cmd.Flags().Changed("author") {
		dst.Author = src.Author
	}
	if cmd.Flags().Changed("genre") {
		dst.Genre = src.Genre
	}
	if cmd.Flags().Changed("year") {
		dst.Year = src.Year
	}
	if cmd.Flags().Changed("description") {
		dst.Description = src.Description
	}
}

// validateBookInput trims and checks the required fields before any
// network call.
func validateBookInput(input *domain.BookInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	return validation.New().Validate(*input)
}

func printBookTable(cmd *cobra.Command, books []domain.Book) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tGENRE\tYEAR")
	for _, b := range books {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Author, orNA(b.Genre), orNA(b.Year))
	}
	w.Flush()
}

func stars(rating int) string {
	return strings.Repeat("*", rating) + strings.Repeat(".", 5-rating)
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
