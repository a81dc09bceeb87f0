package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/hello-svc/internal/api"
	"github.com/janisto/hello-svc/internal/http/routes"
	"github.com/janisto/hello-svc/internal/platform/config"
	applog "github.com/janisto/hello-svc/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-svc/internal/platform/middleware"
	"github.com/janisto/hello-svc/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "0.1.0"

const shutdownTimeout = 10 * time.Second

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		applog.LogFatal(context.Background(), "invalid configuration", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	srv := newServer(cfg.Addr(), newRouter(Version))
	if err := serve(srv, stop); err != nil {
		applog.LogError(context.Background(), "server failed", err, zap.String("addr", srv.Addr))
		_ = applog.Sync()
		os.Exit(1)
	}
}

func newRouter(version string) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(api.DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For / X-Real-IP; deploy behind a proxy that sets them.
		chimiddleware.RealIP,
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	routes.Register(api.New(router, version), version)
	return router
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

// serve runs srv until it fails to listen or a value arrives on stop, then
// shuts it down gracefully.
func serve(srv *http.Server, stop <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	case sig := <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received", zap.Stringer("signal", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	applog.LogInfo(context.Background(), "server exited")
	return nil
}
