package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.trai.ch/margin/internal/adapters/api"
	"go.trai.ch/margin/internal/adapters/telemetry"
	"go.trai.ch/margin/internal/engine/catalog"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	ConfigPath string
	Addr       string

	// OnListen is called with the bound address once the server accepts connections.
	OnListen func(addr net.Addr)
}

// Serve runs the annotation API and the page proxy until ctx is done.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	if j, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		j.SetJSON(cfg.Log.JSON)
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			a.logger.Warn("failed to flush traces: " + err.Error())
		}
	}()

	repo, err := OpenRepository(ctx, cfg.Storage)
	if err != nil {
		return zerr.Wrap(err, "failed to open storage")
	}
	defer func() {
		_ = repo.Close()
	}()

	srv, err := api.New(catalog.New(repo), a.logger, a.tracer, api.Options{
		Endpoint:  cfg.Server.APIEndpoint,
		Inject:    cfg.Server.Inject,
		Upstream:  cfg.Server.Upstream,
		StaticDir: cfg.Server.StaticDir,
	})
	if err != nil {
		return err
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.Server.Addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", cfg.Server.Addr)
	}

	a.logger.Info(fmt.Sprintf("serving annotations at http://%s%s (storage: %s)", ln.Addr(), srv.Endpoint(), cfg.Storage.Driver))
	if opts.OnListen != nil {
		opts.OnListen(ln.Addr())
	}

	hs := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: readTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := hs.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, "server stopped")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return hs.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("server stopped")
	return nil
}
