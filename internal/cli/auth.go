package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logiksutra/bookshelf-cli/internal/validation"
)

// credentials is validated before any call goes out, matching the web
// client's pre-dispatch form checks.
type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func newLoginCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the book-review service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				email = line
			}
			email = strings.TrimSpace(email)

			password, err := readPassword(cmd, "Password: ")
			if err != nil {
				return err
			}

			creds := credentials{Email: email, Password: password}
			if err := validation.New().Validate(creds); err != nil {
				return err
			}

			sess, err := app.Client.Login(cmd.Context(), creds.Email, creds.Password)
			if err != nil {
				return err
			}

			if err := app.Sessions.Establish(sess.Token, sess.User); err != nil {
				app.Logger.Warn("session not persisted; you will be logged out after this run", "error", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Name: ")
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				name = line
			}
			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				email = line
			}

			password, err := readPassword(cmd, "Password: ")
			if err != nil {
				return err
			}

			creds := credentials{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email), Password: password}
			if creds.Name == "" {
				return errMissingName
			}
			if err := validation.New().Validate(creds); err != nil {
				return err
			}

			sess, err := app.Client.Signup(cmd.Context(), creds.Name, creds.Email, creds.Password)
			if err != nil {
				return err
			}

			if err := app.Sessions.Establish(sess.Token, sess.User); err != nil {
				app.Logger.Warn("session not persisted; you will be logged out after this run", "error", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are now logged in.\n", sess.User.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Sessions.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := app.Sessions.Current()
			if !sess.IsAuthenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", sess.User.Name, sess.User.Email)
			return nil
		},
	}
}
