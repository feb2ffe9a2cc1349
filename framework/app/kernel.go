package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/fretelweb/go-validator/framework/config"
	"github.com/fretelweb/go-validator/framework/container"
	gohttp "github.com/fretelweb/go-validator/framework/http"
	"github.com/fretelweb/go-validator/framework/providers"
	"github.com/fretelweb/go-validator/framework/routing"
)

const Version = "0.1.0"

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Singleton(), app.Make(), app.Register() directly —
// like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates the application and registers the framework providers.
func New(envFiles ...string) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}
	c.Instance("app", app)

	// Framework providers are eager or deferred and never fail to register.
	for _, p := range []container.ServiceProvider{
		&providers.ConfigServiceProvider{EnvFiles: envFiles},
		&providers.LogServiceProvider{},
		&providers.RoutingServiceProvider{},
		&providers.DatabaseServiceProvider{},
		&providers.CacheServiceProvider{},
		&providers.ValidationServiceProvider{},
	} {
		_ = registry.Register(p)
	}

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot phase on all providers.
func (a *Application) Boot(ctx context.Context) error {
	return a.Providers.Boot(ctx)
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, "config")
}

// Logger resolves the application logger from the container.
func (a *Application) Logger() *zerolog.Logger {
	return container.MustResolve[*zerolog.Logger](a.Container, "log")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container, "router")
}

// Server builds the HTTP server for APP_PORT.
func (a *Application) Server() *http.Server {
	cfg := a.Config()
	return &http.Server{
		Addr:              net.JoinHostPort("", cfg.App.Port),
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run boots the application and serves HTTP until ctx is cancelled, then
// shuts the server down within APP_SHUTDOWN_TIMEOUT and terminates the
// container.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(ctx); err != nil {
			return err
		}
	}

	cfg := a.Config()
	logger := a.Logger()
	srv := a.Server()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("app: listen on %s: %w", srv.Addr, err)
	}
	return a.serve(ctx, srv, ln, cfg.App.ShutdownTimeout, logger)
}

func (a *Application) serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Str("version", Version).Msg("HTTP server started")
		errCh <- srv.Serve(ln)
	}()

	var serveErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("app: serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			serveErr = fmt.Errorf("app: shutdown: %w", err)
		}
	}

	termCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := a.Terminate(termCtx); err != nil {
		logger.Error().Err(err).Msg("Terminating services failed")
		serveErr = errors.Join(serveErr, err)
	}

	if serveErr == nil {
		logger.Info().Msg("Server stopped")
	}
	return serveErr
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsProduction() bool  { return a.Config().IsProduction() }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }

// Controller is an embeddable base for HTTP controllers.
type Controller struct{}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r)
}

func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}
