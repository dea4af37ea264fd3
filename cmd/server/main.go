package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"optica-store/internal/cart"
	"optica-store/internal/catalog"
	"optica-store/internal/checkout"
	"optica-store/internal/config"
	"optica-store/internal/httpapi"
	"optica-store/internal/kv"
	"optica-store/internal/logger"
	"optica-store/internal/notify"
	"optica-store/internal/order"
	"optica-store/internal/server"
	"optica-store/internal/upload"
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	surface, err := openSurface(cfg)
	if err != nil {
		return err
	}

	api := httpapi.New(cfg.APIBaseURL,
		httpapi.WithTokenSource(httpapi.KVTokenSource{Store: surface}),
	)
	catalogClient := catalog.NewClient(api)
	orderClient := order.NewClient(api)

	cartStore := cart.NewStore(surface)
	cartStore.Load()

	bus := notify.NewBus()
	unsubscribe := bus.Subscribe(func(t notify.Toast) {
		logger.L().Info("toast",
			zap.String("title", t.Title),
			zap.String("description", t.Description),
			zap.String("variant", string(t.Variant)),
		)
	})
	defer unsubscribe()

	checkoutSvc := checkout.NewService(orderClient, cartStore, surface, bus)

	files, err := upload.NewService(cfg.UploadDir)
	if err != nil {
		return err
	}

	router := server.NewRouter(server.Deps{
		Cart:      server.NewCartHandler(cartStore),
		Checkout:  server.NewCheckoutHandler(checkoutSvc, orderClient),
		Catalog:   server.NewCatalogHandler(catalogClient),
		Admin:     server.NewAdminHandler(orderClient),
		Upload:    server.NewUploadHandler(files),
		JWTSecret: cfg.JWTSecret,
		StaticDir: cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("kiosk server listening",
			zap.String("port", cfg.AppPort),
			zap.String("backend", cfg.APIBaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.L().Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// openSurface picks the persistence surface: Postgres when configured,
// otherwise one file per key under the data dir.
func openSurface(cfg *config.Config) (kv.Store, error) {
	if cfg.DBHost != "" {
		store, err := kv.OpenSQL(cfg)
		if err != nil {
			return nil, err
		}
		logger.L().Info("using postgres persistence", zap.String("host", cfg.DBHost))
		return store, nil
	}
	return kv.NewFile(cfg.DataDir)
}
