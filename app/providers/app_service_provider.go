// Package providers holds the application's own service providers.
package providers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fretelweb/go-validator/app/http/controllers"
	"github.com/fretelweb/go-validator/forms"
	"github.com/fretelweb/go-validator/framework/config"
	"github.com/fretelweb/go-validator/framework/container"
	"github.com/fretelweb/go-validator/framework/routing"
	"github.com/fretelweb/go-validator/framework/validation"
	"github.com/fretelweb/go-validator/routes"
)

// AppServiceProvider loads the forms file and mounts the API routes.
//
// Bound abstracts:
//   - "forms"  → *forms.Registry
//
// Boot fails when the forms file is missing or malformed, or when a form uses
// the unique rule and the lookup behind it cannot be built.
type AppServiceProvider struct {
	container.BaseProvider
}

func (p *AppServiceProvider) Register(app *container.Container) {
	app.Singleton("forms", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		return forms.LoadFile(cfg.Validation.FormsFile)
	})
}

func (p *AppServiceProvider) Boot(_ context.Context, app *container.Container) error {
	registry, err := container.Resolve[*forms.Registry](app, "forms")
	if err != nil {
		return err
	}
	logger, err := container.Resolve[*zerolog.Logger](app, "log")
	if err != nil {
		return err
	}

	var unique validation.UniqueChecker
	if registry.Uses(validation.KindUnique) {
		unique, err = container.Resolve[validation.UniqueChecker](app, "unique")
		if err != nil {
			return fmt.Errorf("forms use the unique rule: %w", err)
		}
	}

	router, err := container.Resolve[*routing.Router](app, "router")
	if err != nil {
		return err
	}
	routes.API(router, controllers.NewFormsController(registry, unique, logger))

	logger.Info().Strs("forms", registry.Names()).Bool("unique", unique != nil).Msg("Forms loaded")
	return nil
}
