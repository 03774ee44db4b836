package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"

	xhttp "RiskDash/pkg/http"
	pkgkafka "RiskDash/pkg/kafka"
	applogger "RiskDash/pkg/logger"
)

// ViewCloser cancels every open analysis view.
type ViewCloser interface {
	CloseAll()
}

type namedCloser struct {
	name string
	c    io.Closer
}

// Option configures App.
type Option func(*App)

// WithLogger sets the lifecycle logger.
func WithLogger(l *applogger.Logger) Option {
	return func(a *App) { a.l = l }
}

// WithConsumer starts consumer with the app and stops it on shutdown.
func WithConsumer(c *pkgkafka.Consumer) Option {
	return func(a *App) { a.consumer = c }
}

// WithCloser registers a resource closed on shutdown, in registration order.
func WithCloser(name string, c io.Closer) Option {
	return func(a *App) {
		if c != nil {
			a.closers = append(a.closers, namedCloser{name: name, c: c})
		}
	}
}

// App encapsulates the application lifecycle.
type App struct {
	http     *xhttp.Server
	views    ViewCloser
	consumer *pkgkafka.Consumer
	closers  []namedCloser
	l        *applogger.Logger
}

// New creates an App around an HTTP server.
func New(srv *xhttp.Server, views ViewCloser, opts ...Option) *App {
	a := &App{http: srv, views: views}
	for _, opt := range opts {
		opt(a)
	}
	if a.l == nil {
		a.l = applogger.NewNop()
	}
	return a
}

// Start launches the consumer and the HTTP server without blocking.
func (a *App) Start() error {
	if a.consumer != nil {
		if err := a.consumer.Start(); err != nil {
			return fmt.Errorf("kafka consumer: %w", err)
		}
	}
	if err := a.http.Start(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	if err := a.Start(); err != nil {
		a.l.Error("start failed", applogger.Error(err))
		return multierr.Append(err, a.Shutdown(context.Background()))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	a.l.Info("shutdown signal received", applogger.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.http.ShutdownTimeout())
	defer cancel()
	return a.Shutdown(ctx)
}

// Shutdown stops intake first, then cancels views, then closes resources.
// Every step runs; failures are combined.
func (a *App) Shutdown(ctx context.Context) error {
	a.l.Info("shutting down")

	var err error
	if stopErr := a.http.Stop(ctx); stopErr != nil {
		err = multierr.Append(err, stopErr)
	}
	if a.consumer != nil {
		if stopErr := a.consumer.Stop(ctx); stopErr != nil {
			err = multierr.Append(err, fmt.Errorf("kafka consumer: %w", stopErr))
		}
	}
	if a.views != nil {
		a.views.CloseAll()
	}
	// flushes aggregated logs while the producer is still open
	a.l.RemoveCollector()
	for _, nc := range a.closers {
		if cerr := nc.c.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", nc.name, cerr))
		}
	}

	for _, e := range multierr.Errors(err) {
		a.l.Warn("shutdown step failed", applogger.Error(e))
	}
	a.l.Info("shutdown complete")
	return err
}
