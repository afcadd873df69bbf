// main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"laptop-gallery/config"
	"laptop-gallery/controllers"
	"laptop-gallery/database"
	"laptop-gallery/logging"
	"laptop-gallery/middleware"
	"laptop-gallery/repository"
	"laptop-gallery/routes"
	"laptop-gallery/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	connectCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	client, err := database.ConnectDB(connectCtx, cfg.MongoURI())
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("disconnect mongodb", "error", err)
		}
	}()
	logger.Info("pinged deployment, connected to MongoDB", "database", cfg.DBName)

	db := client.Database(cfg.DBName)
	users := repository.NewUserRepo(db)
	tokens := utils.NewTokenService([]byte(cfg.AccessTokenSecret), cfg.TokenTTL)
	gate := middleware.NewGate(tokens, users, cfg.StoreTimeout)

	// Initialize controllers
	tokenController := controllers.NewTokenController(tokens)
	userController := controllers.NewUserController(users, cfg.StoreTimeout)
	catalogController := controllers.NewCatalogController(repository.NewProductRepo(db), repository.NewReviewRepo(db), cfg.StoreTimeout)
	cartController := controllers.NewCartController(repository.NewCartRepo(db), cfg.StoreTimeout)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, gate, tokenController, userController, catalogController, cartController)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes.Handler(router, logger, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("laptop gallery is running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
