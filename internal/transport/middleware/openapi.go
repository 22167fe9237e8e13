package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/transport"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// OpenAPIValidator checks requests against the OpenAPI document in spec.
// Paths in the document are relative to prefix. Requests for operations the
// document does not describe are passed through untouched.
func OpenAPIValidator(spec []byte, prefix string, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	// route on bare paths; prefix is trimmed from each request instead
	doc.Servers = nil

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         true,
	}
	base := transport.NewBaseHandler(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			routed := r.Clone(r.Context())
			routed.URL.Path = strings.TrimPrefix(r.URL.Path, prefix)
			routed.URL.RawPath = ""

			route, pathParams, err := router.FindRoute(routed)
			if err != nil {
				if !errors.Is(err, routers.ErrPathNotFound) && !errors.Is(err, routers.ErrMethodNotAllowed) {
					logger.Warn("openapi route lookup failed", "path", r.URL.Path, "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    routed,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			verr := openapi3filter.ValidateRequest(r.Context(), input)
			// the validator drains the body and leaves a fresh reader on routed
			r.Body = routed.Body
			if verr != nil {
				base.WriteAppError(w, requestValidationError(verr))
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func requestValidationError(err error) *internal.AppError {
	var details []internal.ValidationError
	collect := func(e error) {
		var reqErr *openapi3filter.RequestError
		if errors.As(e, &reqErr) {
			field := "body"
			if reqErr.Parameter != nil {
				field = reqErr.Parameter.Name
			}
			details = append(details, internal.ValidationError{
				Field:   field,
				Message: reqErr.Error(),
				Code:    string(internal.ErrCodeInvalidBody),
			})
			return
		}
		details = append(details, internal.ValidationError{
			Field:   "request",
			Message: e.Error(),
			Code:    string(internal.ErrCodeInvalidBody),
		})
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, e := range multi {
			collect(e)
		}
	} else {
		collect(err)
	}

	return internal.NewValidationError("request does not match the API schema", internal.ErrCodeInvalidBody).
		WithDetails(internal.ValidationErrors{Errors: details})
}
