// Package routes declares the service's HTTP routes.
package routes

import (
	"github.com/fretelweb/go-validator/app/http/controllers"
	"github.com/fretelweb/go-validator/framework/routing"
)

// API registers the /api/v1 routes, like Laravel's routes/api.php.
func API(r *routing.Router, forms *controllers.FormsController) {
	r.NotFound(forms.NotFound)
	r.MethodNotAllowed(forms.MethodNotAllowed)

	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/health", forms.Health)

		api.Get("/forms", forms.Index)
		api.Get("/forms/{form}", forms.Show)
		api.Post("/forms/{form}/validate", forms.Validate)
	})
}
