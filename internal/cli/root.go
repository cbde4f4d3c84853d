// Package cli implements the bookshelf command tree. Commands are thin:
// they parse input, gate on authentication, call one component, and
// print. All session and consistency logic lives in the components
// underneath.
package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/logiksutra/bookshelf-cli/internal/api"
	"github.com/logiksutra/bookshelf-cli/internal/catalog"
	"github.com/logiksutra/bookshelf-cli/internal/config"
	"github.com/logiksutra/bookshelf-cli/internal/di"
	apperrors "github.com/logiksutra/bookshelf-cli/internal/errors"
	"github.com/logiksutra/bookshelf-cli/internal/logger"
	"github.com/logiksutra/bookshelf-cli/internal/review"
	"github.com/logiksutra/bookshelf-cli/internal/session"
	"github.com/logiksutra/bookshelf-cli/internal/task"
)

// App carries the resolved components for the duration of one command.
type App struct {
	injector *do.RootScope

	Config   *config.Config
	Logger   *logger.Logger
	Sessions *session.Manager
	Client   *api.Client
	Pager    *catalog.Pager

	// scope bounds the command's fetch-and-render work. It is disposed
	// when the command's context is canceled, so an interrupted command
	// never renders a response that arrived after the interrupt.
	scope *task.Scope

	overrides config.Overrides
}

// NewRootCmd builds the bookshelf command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:   "bookshelf",
		Short: "A terminal client for the LogikSutra book-review service",
		Long: `bookshelf browses the shared book catalogue, manages your own
book entries, and maintains your reviews (one per book).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.bootstrap(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			app.shutdown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.overrides.APIURL, "api-url", "", "base URL of the book-review service")
	flags.StringVar(&app.overrides.StatePath, "state-path", "", "directory for local client state (default ~/.bookshelf)")
	flags.StringVar(&app.overrides.PageSize, "page-size", "", "books per catalogue page")
	flags.StringVar(&app.overrides.Timeout, "timeout", "", "HTTP timeout (e.g. 30s)")
	flags.StringVar(&app.overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&app.overrides.Environment, "env", "", "environment (development, staging, production)")
	flags.StringVar(&app.overrides.EnvFile, "env-file", "", "path to .env file")

	root.AddCommand(
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newBrowseCmd(app),
		newMyBooksCmd(app),
		newBookCmd(app),
		newReviewCmd(app),
	)

	return root
}

// bootstrap resolves the component graph for this run.
func (a *App) bootstrap(ctx context.Context) error {
	a.scope = task.NewScope(ctx)
	context.AfterFunc(ctx, a.scope.Dispose)

	a.injector = di.NewContainer(a.overrides)

	cfg, err := do.Invoke[*config.Config](a.injector)
	if err != nil {
		return err
	}
	a.Config = cfg

	a.Logger = do.MustInvoke[*logger.Logger](a.injector)
	a.Sessions = do.MustInvoke[*session.Manager](a.injector)
	a.Client = do.MustInvoke[*api.Client](a.injector)
	a.Pager = do.MustInvoke[*catalog.Pager](a.injector)
	return nil
}

// shutdown releases the container, closing the state store.
func (a *App) shutdown() {
	if a.scope != nil {
		a.scope.Dispose()
		a.scope.Wait()
	}
	if a.injector != nil {
		_ = a.injector.Shutdown()
	}
}

// runView runs fetch inside the command's scope and calls render once
// the fetch has completed. If the scope is disposed first (Ctrl-C, or
// the enclosing context ending), the result is discarded and the
// command exits without rendering.
func (a *App) runView(fetch func(context.Context) error, render func() error) error {
	var result error
	delivered := false

	a.scope.Go(fetch, func(err error) {
		delivered = true
		if err != nil {
			result = err
			return
		}
		result = render()
	})
	a.scope.Wait()

	if !delivered {
		return a.scope.Context().Err()
	}
	return result
}

// newReconciler builds a per-command review reconciler over the shared
// gateway and session.
func (a *App) newReconciler() *review.Reconciler {
	return review.NewReconciler(a.Client, a.Sessions, a.Logger.Logger)
}

// requireLogin gates an auth-gated command. The hint replaces the web
// client's redirect to the login page; no request is dispatched.
func (a *App) requireLogin() error {
	if !a.Sessions.IsAuthenticated() {
		return apperrors.AuthRequired("you are not logged in; run 'bookshelf login' first")
	}
	return nil
}

// RenderError writes a user-facing message for err.
func RenderError(w io.Writer, err error) {
	var domainErr *apperrors.Error
	if apperrors.As(err, &domainErr) && domainErr.Code == apperrors.CodeValidation {
		fmt.Fprintf(w, "Error: %s\n", domainErr.Message)
		if fields, ok := domainErr.Details.(map[string]string); ok {
			names := make([]string, 0, len(fields))
			for name := range fields {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(w, "  %s %s\n", name, fields[name])
			}
		}
		return
	}

	var apiErr *api.Error
	if apperrors.As(err, &apiErr) {
		fmt.Fprintf(w, "Error: %s\n", apiErr.Message)
		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)
}
