// Package app wires the validation service on top of the framework kernel.
package app

import (
	"github.com/fretelweb/go-validator/app/providers"
	fwapp "github.com/fretelweb/go-validator/framework/app"
)

// New creates the application with the framework providers and the
// service's own, like bootstrap/app.php.
func New(envFiles ...string) *fwapp.Application {
	application := fwapp.New(envFiles...)
	_ = application.Register(&providers.AppServiceProvider{})
	return application
}
