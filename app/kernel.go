// Package app wires the container, the core service providers and the HTTP
// server into a runnable application.
package app

import (
	"net/http"

	"github.com/knoxlab/bindery/audit"
	"github.com/knoxlab/bindery/binding"
	"github.com/knoxlab/bindery/config"
	"github.com/knoxlab/bindery/container"
	"github.com/knoxlab/bindery/providers"
	"github.com/knoxlab/bindery/routing"
	"go.uber.org/zap"
)

// Application is the top-level application container. It embeds the IoC
// container and provider registry, so user code can call app.Singleton(),
// app.Resolve() and app.Register() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates the application and registers the framework core providers.
func New(envFiles ...string) (*Application, error) {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	core := []container.ServiceProvider{
		&providers.ConfigServiceProvider{EnvFiles: envFiles},
		&providers.LoggingServiceProvider{},
		&providers.RoutingServiceProvider{},
		&providers.AuditServiceProvider{},
		&providers.PipeServiceProvider{},
	}
	for _, p := range core {
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// ── Accessors ────────────────────────────────────────────────────────────────

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, providers.TokenConfig)
}

// Logger resolves the zap logger from the container.
func (a *Application) Logger() *zap.Logger {
	return container.MustResolve[*zap.Logger](a.Container, providers.TokenLogger)
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container, providers.TokenRouter)
}

// Audit resolves the audit recorder from the container.
func (a *Application) Audit() audit.Recorder {
	return container.MustResolve[audit.Recorder](a.Container, providers.TokenAudit)
}

// ── Run ──────────────────────────────────────────────────────────────────────

// Run boots the application (if needed), verifies the dependency graph and
// starts the HTTP server. The request token is assumed: it is installed into
// every request scope by the router adapter.
func (a *Application) Run() error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}
	if err := a.Verify(binding.TokenRequest); err != nil {
		return err
	}

	cfg := a.Config()
	log := a.Logger()
	addr := ":" + cfg.App.Port
	log.Info("listening",
		zap.String("app", cfg.App.Name),
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
	)
	return http.ListenAndServe(addr, a.Router())
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
