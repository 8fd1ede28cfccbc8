package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

// HandlerFunc handles a decoded request of type R.
type HandlerFunc[R any] func(r *http.Request, req R) Response

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind decodes an HTTP request into v.
type Bind func(r *http.Request, v any) error

// ErrorHandler writes a response for binding and rendering failures.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// WrapOption configures Wrap.
type WrapOption func(*wrapConfig)

type wrapConfig struct {
	bind         Bind
	errorHandler ErrorHandler
}

// WithBinder replaces the default JSON binder. Pass NoBind for handlers that
// read nothing from the body.
func WithBinder(b Bind) WrapOption {
	return func(c *wrapConfig) {
		if b != nil {
			c.bind = b
		}
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) WrapOption {
	return func(c *wrapConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// BindJSON decodes the request body into v. An empty body leaves v untouched.
func BindJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}

// NoBind skips request decoding.
func NoBind(*http.Request, any) error { return nil }

// DefaultErrorHandler writes a JSON error envelope: 400 for ErrBadRequest,
// 500 otherwise.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	if errors.Is(err, ErrBadRequest) {
		status, code = http.StatusBadRequest, "bad_request"
	}
	_ = JSONError(&ErrorDetail{Code: code, Message: http.StatusText(status)}, WithJSONStatus(status)).Render(w, r)
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc.
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption) http.HandlerFunc {
	cfg := &wrapConfig{
		bind:         BindJSON,
		errorHandler: DefaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req R
		if err := cfg.bind(r, &req); err != nil {
			cfg.errorHandler(w, r, err)
			return
		}

		resp := h(r, req)
		if resp == nil {
			cfg.errorHandler(w, r, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(w, r, err)
		}
	}
}
