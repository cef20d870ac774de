package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/weegigs/wee-counter/connectors/wehttp"
	"github.com/weegigs/wee-counter/connectors/wemcp"
	"github.com/weegigs/wee-counter/counter"
	"github.com/weegigs/wee-counter/support"
	"github.com/weegigs/wee-counter/we"
)

// Fatal stops the process with a cause.
type Fatal func(cause error)

type Application struct {
	config  support.Config
	log     *zerolog.Logger
	service counter.CounterService
	mcp     *server.MCPServer
}

func newApplication(config support.Config, logger *zerolog.Logger, service counter.CounterService, mcpServer *server.MCPServer, _ oteltrace.TracerProvider) *Application {
	return &Application{
		config:  config,
		log:     logger,
		service: service,
		mcp:     mcpServer,
	}
}

func newMCPServer(service counter.CounterService, logger *zerolog.Logger) *server.MCPServer {
	return wemcp.NewServer[counter.Counter](
		service,
		wemcp.Logger[counter.Counter](logger),
		wemcp.Implementation[counter.Counter]("wee-counter", version()),
	)
}

// storeOptions turns a poisoned counter into a process shutdown.
func storeOptions(logger *zerolog.Logger, fatal Fatal) []we.StoreOption {
	return []we.StoreOption{
		we.WithPoisonObserver(func(err error) {
			logger.Error().Err(err).Msg("counter store poisoned, shutting down")
			fatal(err)
		}),
	}
}

func (app *Application) Run(ctx context.Context) error {
	switch app.config.Transport {
	case support.HTTPTransport:
		return app.serveHTTP(ctx)
	default:
		app.log.Info().Msg("serving mcp over stdio")
		return wemcp.ServeStdio(ctx, app.mcp, os.Stdin, os.Stdout, app.log)
	}
}

func (app *Application) serveHTTP(ctx context.Context) error {
	handler := wehttp.NewHandler[counter.Counter](
		"counter",
		app.service,
		wehttp.Logger[counter.Counter](app.log),
		wehttp.Mount[counter.Counter]("/mcp", wemcp.StreamableHandler(app.mcp)),
	)

	srv := &http.Server{
		Addr:              app.config.Address,
		Handler:           withLogging(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	failed := make(chan error, 1)
	go func() {
		app.log.Info().Str("address", app.config.Address).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
		close(failed)
	}()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdown)
}

func run() error {
	config, err := support.LoadConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	app, cleanup, err := live(ctx, config, Fatal(cancel))
	if err != nil {
		return errors.Wrap(err, "failed to configure service")
	}
	defer cleanup()

	err = app.Run(ctx)
	if cause := context.Cause(ctx); errors.Is(cause, we.ErrPoisoned) {
		return cause
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func main() {
	if err := run(); err != nil {
		log.Logger.Fatal().Err(err).Msg("wee-counter stopped")
	}
}
