package di

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/logiksutra/bookshelf-cli/internal/api"
	"github.com/logiksutra/bookshelf-cli/internal/catalog"
	"github.com/logiksutra/bookshelf-cli/internal/config"
	"github.com/logiksutra/bookshelf-cli/internal/logger"
	"github.com/logiksutra/bookshelf-cli/internal/session"
	"github.com/logiksutra/bookshelf-cli/internal/state"
)

// ProvideConfig provides the client configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	overrides := do.MustInvoke[config.Overrides](i)
	return config.Load(overrides)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	}), nil
}

// StateHandle wraps the state store for lifecycle management. Store is
// nil when local storage could not be opened; the client then runs
// logged out rather than failing.
type StateHandle struct {
	Store *state.Store
}

// Shutdown implements do.Shutdownable.
func (h *StateHandle) Shutdown() error {
	if h.Store == nil {
		return nil
	}
	return h.Store.Close()
}

// ProvideStateStore provides the local state database.
func ProvideStateStore(i do.Injector) (*StateHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.State.Path, 0o700); err != nil {
		log.Warn("cannot create state directory, running without persistence",
			"path", cfg.State.Path, "error", err)
		return &StateHandle{}, nil
	}

	store, err := state.Open(cfg.State.Path, log.Logger)
	if err != nil {
		log.Warn("cannot open state store, running without persistence",
			"path", cfg.State.Path, "error", err)
		return &StateHandle{}, nil
	}

	return &StateHandle{Store: store}, nil
}

// ProvideSessionManager provides the injected session context.
func ProvideSessionManager(i do.Injector) (*session.Manager, error) {
	handle := do.MustInvoke[*StateHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return session.NewManager(handle.Store, log.Logger), nil
}

// ProvideAPIClient provides the gateway to the book-review service.
func ProvideAPIClient(i do.Injector) (*api.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sessions := do.MustInvoke[*session.Manager](i)
	handle := do.MustInvoke[*StateHandle](i)

	var clientID string
	if handle.Store != nil {
		id, err := handle.Store.ClientID()
		if err != nil {
			log.Warn("cannot load client id", "error", err)
		} else {
			clientID = id
		}
	}

	return api.New(api.Config{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		Tokens:   sessions,
		ClientID: clientID,
		Logger:   log.Logger,
	}), nil
}

// ProvidePager provides the catalogue pagination controller.
func ProvidePager(i do.Injector) (*catalog.Pager, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*api.Client](i)

	return catalog.NewPager(client, cfg.API.PageSize, log.Logger), nil
}
