package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
)

// MakeHandlerFunc serves an endpoint through go-kit with the shared error encoder.
func MakeHandlerFunc(
	e endpoint.Endpoint,
	dec kithttp.DecodeRequestFunc,
	enc kithttp.EncodeResponseFunc,
) http.HandlerFunc {
	return kithttp.NewServer(e, dec, enc,
		kithttp.ServerErrorEncoder(ErrorResponse),
	).ServeHTTP
}

// DecodeRequest decodes a JSON body into a new T, when there is one, and binds
// path, query and header values through render.Binder. Multipart bodies are
// left for the binder.
func DecodeRequest[T any](_ context.Context, r *http.Request) (interface{}, error) {
	req := new(T)

	if r.Body != nil && r.Body != http.NoBody &&
		!strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := render.DecodeJSON(r.Body, req); err != nil && !errors.Is(err, io.EOF) {
			return nil, exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Kind:       exception.KindValidation,
				Message:    "invalid request body",
				Cause:      err,
			}
		}
	}

	if binder, ok := any(req).(render.Binder); ok {
		if err := binder.Bind(r); err != nil {
			return nil, err
		}
	}

	return req, nil
}
