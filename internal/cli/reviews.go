package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReviewCmd(app *App) *cobra.Command {
	var (
		rating int
		text   string
	)

	cmd := &cobra.Command{
		Use:   "review <book-id>",
		Short: "Add or update your review of a book",
		Long: `review submits your review of a book. Each user holds at most one
review per book: if you already reviewed the book, the existing review
is updated in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			rec := app.newReconciler()
			if err := rec.Load(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, hadReview := rec.Current()

			if err := rec.Submit(cmd.Context(), rating, text); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if hadReview {
				fmt.Fprintln(out, "Review updated.")
			} else {
				fmt.Fprintln(out, "Review added.")
			}

			average, count := rec.Aggregates()
			fmt.Fprintf(out, "Average rating is now %.1f / 5 (%d reviews).\n", average, count)
			return nil
		},
	}

	cmd.Flags().IntVar(&rating, "rating", 0, "rating from 1 to 5 (required)")
	cmd.Flags().StringVar(&text, "text", "", "review text (required)")

	cmd.AddCommand(newReviewRemoveCmd(app))
	return cmd
}

func newReviewRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <book-id>",
		Short: "Delete your review of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			rec := app.newReconciler()
			if err := rec.Load(cmd.Context(), args[0]); err != nil {
				return err
			}

			if _, ok := rec.Current(); !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "You have no review on this book.")
				return nil
			}

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete your review of this book?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			if err := rec.Delete(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Review deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}
