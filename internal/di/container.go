// Package di provides dependency injection configuration for the
// Bookshelf client.
package di

import (
	"github.com/samber/do/v2"

	"github.com/logiksutra/bookshelf-cli/internal/config"
)

// NewContainer creates and configures the DI container with all providers.
// The command-line overrides are seeded as a value so ProvideConfig can
// fold them into the precedence chain.
func NewContainer(overrides config.Overrides) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, overrides)

	// Core infrastructure
	do.Provide(injector, ProvideConfig)
	do.Provide(injector, ProvideLogger)

	// Local state
	do.Provide(injector, ProvideStateStore)
	do.Provide(injector, ProvideSessionManager)

	// Remote gateway and the components over it
	do.Provide(injector, ProvideAPIClient)
	do.Provide(injector, ProvidePager)

	return injector
}
