// Command devserver is an in-memory stand-in for the tourism backend. It
// implements the REST surface the client consumes so the CLI and SDK can run
// end to end without the real service. Development use only.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting devserver", zap.String("addr", *addr))

	srv := newServer(logger)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/tourism").Subrouter()
	api.Use(srv.logRequests)

	api.HandleFunc("/scenic_spots/", srv.handleList).Methods(http.MethodGet)
	api.HandleFunc("/scenic_spots/categories/", srv.handleCategories).Methods(http.MethodGet)
	api.HandleFunc("/scenic_spots/nearby/", srv.handleNearby).Methods(http.MethodGet)
	api.HandleFunc("/scenic_spots/geojson/", srv.handleGeoJSON).Methods(http.MethodGet)
	api.HandleFunc("/scenic_spots/update_data/", srv.handleUpdateData).Methods(http.MethodPost)
	api.HandleFunc("/scenic_spots/filter/", srv.handleFilter).Methods(http.MethodPost)
	api.HandleFunc("/scenic_spots/{id}/", srv.handleDetail).Methods(http.MethodGet)
	api.HandleFunc("/register/", srv.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login/", srv.handleLogin).Methods(http.MethodPost)

	hs := &http.Server{
		Addr:         *addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		errCh <- hs.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
