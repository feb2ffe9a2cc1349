// Package http provides Laravel-style request and response helpers.
//
// # Request
//
// Request wraps *http.Request and turns the body into validation input.
//
//	req := gohttp.NewRequest(r)
//
//	data, err := req.Data()          // JSON object or form body → validation.Data
//	form := req.RouteParam("form")   // chi route parameter
//
// # Response
//
// Response wraps http.ResponseWriter with helpers matching Laravel's
// response() helper and JsonResponse.
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)             // raw JSON with status
//	res.Success(data)               // 200 {"data": ...}
//	res.Error(400, "bad input")     // {"message": "bad input"}
//	res.NotFound()                  // 404 {"message": "Not found."}
//	res.MethodNotAllowed()          // 405
//	res.ServerError()               // 500 {"message": "Server Error."}
//	res.ServiceUnavailable()        // 503
//	res.ValidationError(v.Errors()) // 422 {"errors": {"field": "msg"}}
package http
