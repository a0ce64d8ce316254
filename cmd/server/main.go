package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/shopworks/supermarket/internal/config"
	"github.com/shopworks/supermarket/internal/db"
	"github.com/shopworks/supermarket/internal/handlers"
	"github.com/shopworks/supermarket/internal/httpserver"
	"github.com/shopworks/supermarket/internal/logging"
	authmw "github.com/shopworks/supermarket/internal/middleware/auth"
	loggingmw "github.com/shopworks/supermarket/internal/middleware/logging"
	"github.com/shopworks/supermarket/internal/session"
	"github.com/shopworks/supermarket/internal/upload"
	"github.com/shopworks/supermarket/internal/view"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmpty(cfg.SessionSecret, "SESSION_SECRET")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", "supermarket")
	slog.SetDefault(logger)

	renderer, err := view.New()
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}

	sessionManager := session.NewManager(session.NewMemoryStore([]byte(cfg.SessionSecret)))
	images := &upload.DiskStore{Dir: cfg.UploadDir}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Static("/public", cfg.PublicDir)

	httpserver.Register(e, &httpserver.Deps{
		Auth:     &handlers.AuthHandler{DB: database, Sessions: sessionManager},
		Products: &handlers.ProductHandler{DB: database, Images: images, Sessions: sessionManager},
		Cart:     &handlers.CartHandler{DB: database, Sessions: sessionManager},
		Guard:    &authmw.Guard{Sessions: sessionManager},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("supermarket listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("supermarket stopped")
}
