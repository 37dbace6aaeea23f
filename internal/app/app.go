package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/text/language"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/cartfile"
	"github.com/niksmo/storefront/internal/adapter/gviz"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/whatsapp"
	"github.com/niksmo/storefront/internal/core/service"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	service    *service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) App {
	app := App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initCoreService()
	app.initHTTPServer()

	return app
}

func (app App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	locale, err := language.Parse(app.cfg.Store.Locale)
	if err != nil {
		app.fallDown(op, err)
	}

	composer, err := whatsapp.NewComposer(whatsapp.ComposerConfig{
		StoreName: app.cfg.Store.Name,
		Number:    app.cfg.Store.WhatsAppNumber,
		Locale:    app.cfg.Store.Locale,
		Currency:  app.cfg.Store.Currency,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	loader := gviz.NewLoader(gviz.LoaderConfig{
		SheetID:          app.cfg.Sheet.ID,
		SheetName:        app.cfg.Sheet.Name,
		PlaceholderImage: app.cfg.Store.PlaceholderImage,
		FallbackCategory: app.cfg.Store.FallbackCategory,
	})

	vault := cartfile.New(app.cfg.CartFile)

	app.service = service.New(loader, vault, composer, locale)
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(
		mux, app.service, app.service, app.cfg.Store.MinStockGood,
	)
	httphandler.RegisterCart(mux, app.service, app.cfg.Store.MinStockGood)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.loadCatalog()

	slog.Info("application is running")
}

// loadCatalog performs the startup fetch. Failure is remembered by
// the service as a persistent error state, not treated as fatal: the
// reload endpoint is the manual retry.
func (app App) loadCatalog() {
	const op = "App.loadCatalog"
	log := slog.With("op", op)

	n, err := app.service.Reload(app.ctx)
	if err != nil {
		log.Error("failed to load catalog on startup", "err", err)
		return
	}
	log.Info("catalog loaded", "products", n)
}

func (app App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)

	slog.Info("application is closed")
}

func (app App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
