// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives the decoded request value and returns a Response
// that renders itself:
//
//	type signupRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	r.Post("/signup", handler.Wrap(func(r *http.Request, req signupRequest) handler.Response {
//		return handler.JSON(map[string]string{"email": req.Email})
//	}))
//
// Requests are decoded with BindJSON unless another Bind is supplied through
// WithBinder. Binding and rendering failures go to the ErrorHandler, which
// by default writes a JSON error envelope.
//
// Responses share one envelope:
//
//	{"data": ..., "error": {"code": "...", "message": "...", "details": {...}}, "meta": {...}}
package handler
