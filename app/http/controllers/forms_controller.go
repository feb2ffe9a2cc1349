package controllers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fretelweb/go-validator/forms"
	"github.com/fretelweb/go-validator/framework/app"
	gohttp "github.com/fretelweb/go-validator/framework/http"
	"github.com/fretelweb/go-validator/framework/validation"
)

// FormsController exposes the form registry and validates submissions.
type FormsController struct {
	app.Controller

	Forms  *forms.Registry
	Unique validation.UniqueChecker // nil when no form uses unique
	Logger *zerolog.Logger
}

// NewFormsController builds the controller. unique may be nil when no form
// uses the unique rule.
func NewFormsController(registry *forms.Registry, unique validation.UniqueChecker, logger *zerolog.Logger) *FormsController {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &FormsController{Forms: registry, Unique: unique, Logger: logger}
}

// Health answers GET /health.
func (c *FormsController) Health(w http.ResponseWriter, _ *http.Request) {
	c.Response(w).Success(map[string]string{"status": "ok"})
}

// Index answers GET /forms with every form name.
func (c *FormsController) Index(w http.ResponseWriter, _ *http.Request) {
	c.Response(w).Success(c.Forms.Names())
}

// Show answers GET /forms/{form} with the form's rule descriptors.
func (c *FormsController) Show(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)

	form, err := c.Forms.Get(c.Request(r).RouteParam("form"))
	if err != nil {
		res.NotFound("Form not found.")
		return
	}

	res.Success(map[string]any{
		"name":   form.Name,
		"fields": form.Rules.Fields(),
		"rules":  form.Rules.Rules(),
	})
}

// Validate answers POST /forms/{form}/validate.
//
//	200 {"data": {field: value}}      every rule passed
//	400 / 415                         unreadable body
//	422 {"errors": {field: message}}  at least one rule failed
//	503                               the unique lookup failed
func (c *FormsController) Validate(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	form, err := c.Forms.Get(req.RouteParam("form"))
	if err != nil {
		res.NotFound("Form not found.")
		return
	}

	data, err := req.Data()
	switch {
	case errors.Is(err, gohttp.ErrUnsupportedMediaType):
		res.Error(http.StatusUnsupportedMediaType, err.Error())
		return
	case err != nil:
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	logger := c.Logger.With().Str("form", form.Name).Logger()
	opts := []validation.Option{validation.WithLogger(&logger)}
	if c.Unique != nil {
		opts = append(opts, validation.WithUniqueChecker(c.Unique))
	}

	v := form.Validator(data, opts...)
	ok, err := v.ValidateContext(r.Context())
	switch {
	case errors.Is(err, validation.ErrUniqueLookup):
		res.ServiceUnavailable("The unique check could not be completed.")
		return
	case err != nil:
		logger.Error().Err(err).Msg("validation misconfigured")
		res.ServerError()
		return
	case !ok:
		res.ValidationError(v.Errors())
		return
	}

	validated := v.Validated()
	if validated == nil {
		validated = map[string]string{}
	}
	res.Success(validated)
}

// NotFound answers unmatched routes.
func (c *FormsController) NotFound(w http.ResponseWriter, _ *http.Request) {
	c.Response(w).NotFound()
}

// MethodNotAllowed answers routes hit with the wrong method.
func (c *FormsController) MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	c.Response(w).MethodNotAllowed()
}
