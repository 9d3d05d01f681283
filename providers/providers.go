// Package providers holds the framework's core service providers, registered
// by the application kernel in order.
package providers

import (
	"github.com/knoxlab/bindery/audit"
	"github.com/knoxlab/bindery/binding"
	"github.com/knoxlab/bindery/config"
	"github.com/knoxlab/bindery/container"
	gohttp "github.com/knoxlab/bindery/http"
	"github.com/knoxlab/bindery/pipe"
	"github.com/knoxlab/bindery/routing"
	"go.uber.org/zap"
)

// Tokens bound by the core providers.
const (
	TokenConfig container.Token = "config"
	TokenLogger container.Token = "logger"
	TokenRouter container.Token = "router"
	TokenAudit  container.Token = "audit"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it under "config" (aliased as "configuration").
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	envFiles := p.EnvFiles
	app.Singleton(TokenConfig, func(r *container.Resolver) (any, error) {
		return config.Load(envFiles...), nil
	})
	app.Alias(TokenConfig, "configuration")
	return nil
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the zap logger under "logger". The variant
// follows APP_ENV: production config in production, a no-op logger under
// test, development config otherwise.
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(app *container.Container) error {
	app.Singleton(TokenLogger, func(r *container.Resolver) (any, error) {
		cfg, err := container.Use[*config.Config](r, TokenConfig)
		if err != nil {
			return nil, err
		}
		switch cfg.App.Env {
		case "production":
			return zap.NewProduction()
		case "testing":
			return zap.NewNop(), nil
		default:
			return zap.NewDevelopment()
		}
	}, container.Needs(TokenConfig))
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider binds the HTTP router under "router".
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	app.Singleton(TokenRouter, func(r *container.Resolver) (any, error) {
		return routing.New(), nil
	})
	return nil
}

// ── AuditServiceProvider ──────────────────────────────────────────────────────

// AuditServiceProvider binds the audit recorder under "audit". Tests swap it
// for an in-memory recorder with a container override.
type AuditServiceProvider struct {
	container.BaseProvider
}

func (p *AuditServiceProvider) Register(app *container.Container) error {
	app.Singleton(TokenAudit, func(r *container.Resolver) (any, error) {
		log, err := container.Use[*zap.Logger](r, TokenLogger)
		if err != nil {
			return nil, err
		}
		return audit.NewZap(log), nil
	}, container.Needs(TokenLogger))
	return nil
}

// ── PipeServiceProvider ───────────────────────────────────────────────────────

// PipeServiceProvider binds the built-in pipes. CurrentUser is scoped: it is
// constructed once per request scope from the request instance installed
// there, and its declared dependency on the request token lets Verify check
// the wiring before any request is served.
type PipeServiceProvider struct {
	container.BaseProvider
}

func (p *PipeServiceProvider) Register(app *container.Container) error {
	app.Scoped(pipe.TokenCurrentUser, func(r *container.Resolver) (any, error) {
		req, err := container.Use[*gohttp.Request](r, binding.TokenRequest)
		if err != nil {
			return nil, err
		}
		return pipe.NewCurrentUser(req), nil
	}, container.Needs(binding.TokenRequest))
	return nil
}
