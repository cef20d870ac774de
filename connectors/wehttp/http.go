package wehttp

import (
	"context"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/weegigs/wee-counter/we"
)

type HandlerOption[T comparable] func(service *httpService[T])

func Logger[T comparable](log *zerolog.Logger) HandlerOption[T] {
	return func(service *httpService[T]) {
		service.log = log
	}
}

// Mount adds an extra handler, such as the MCP streamable endpoint, to the router.
func Mount[T comparable](pattern string, handler http.Handler) HandlerOption[T] {
	return func(service *httpService[T]) {
		service.mounts = append(service.mounts, mount{pattern: pattern, handler: handler})
	}
}

type mount struct {
	pattern string
	handler http.Handler
}

// NewHandler serves the entity under /{resource} and its operations under /operations.
func NewHandler[T comparable](resource string, entityService we.EntityService[T], options ...HandlerOption[T]) http.Handler {
	service := &httpService[T]{controller: entityService, encoder: we.NewResourceEncoder[T]()}
	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}

	r := chi.NewRouter()

	for _, m := range service.mounts {
		r.Handle(m.pattern, m.handler)
	}

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Method("GET", "/"+resource, service.getResource())
		r.Method("GET", "/operations", service.listOperations())
		r.Method("POST", "/operations/{command}", service.executeCommand())
	})

	return otelhttp.NewHandler(r, "wee-counter-http", otelhttp.WithSpanNameFormatter(spanName))
}

// spanName runs before routing, so it names spans by path rather than route pattern.
func spanName(_ string, r *http.Request) string {
	return "http " + r.Method + " " + r.URL.Path
}

// maxArgumentsSize caps request bodies; operations take at most an empty object.
const maxArgumentsSize = 4 << 10

type httpService[T comparable] struct {
	log        *zerolog.Logger
	controller we.EntityService[T]
	encoder    we.EntityEncoder[T]
	mounts     []mount
}

type operationsResource struct {
	Instructions string             `json:"instructions"`
	Operations   []we.OperationInfo `json:"operations"`
}

func (service *httpService[T]) getResource() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity, err := service.controller.Load(r.Context())
		if err != nil {
			service.log.Info().Err(err).Msg("failed to load resource")
			http.Error(w, "failed to load resource", statusOf(err))
			return
		}

		if err := service.encoder.Encode(w, r, entity); err != nil {
			service.log.Info().Err(err).Msg("failed to encode resource")
		}
	}
}

func (service *httpService[T]) listOperations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, operationsResource{
			Instructions: service.controller.Instructions(),
			Operations:   service.controller.Operations(),
		})
	}
}

func (service *httpService[T]) executeCommand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		command := we.RemoteCommand{CommandName: we.CommandName(chi.URLParam(r, "command"))}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArgumentsSize))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if len(body) > 0 {
			contentType := r.Header.Get("Content-type")
			mediaType, _, err := mime.ParseMediaType(contentType)
			if mediaType != "application/json" || err != nil {
				http.Error(w, "unsupported content type", http.StatusUnsupportedMediaType)
				return
			}

			if !json.Valid(body) {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}

			command.Arguments = body
		}

		reply, err := service.controller.Execute(r.Context(), command)
		if err != nil {
			service.log.Info().Err(err).Str("command", command.CommandName.String()).Msg("failed to execute command")
			http.Error(w, "failed to execute command: "+err.Error(), statusOf(err))
			return
		}

		render.JSON(w, r, reply)
	}
}

func statusOf(err error) int {
	var notFound we.CommandNotFoundError
	var invalid *we.InvalidArgumentsError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, we.ErrPoisoned):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
