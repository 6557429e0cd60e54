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

	"journalapi/pkg/factory"
)

func main() {
	appFactory, err := factory.NewFactory(context.Background())
	if err != nil {
		fmt.Printf("Application could not be initialised: %v\n", err)
		os.Exit(1)
	}

	log := appFactory.GetLogger()
	cfg := appFactory.GetConfig()

	log.Info("Starting application", map[string]interface{}{
		"env":    cfg.AppEnv,
		"driver": string(appFactory.GetConnectionManager().Dialect()),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           appFactory.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"port": cfg.Server.Port})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server could not be started", map[string]interface{}{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", map[string]interface{}{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", map[string]interface{}{"error": err.Error()})
	}

	if err := appFactory.Close(ctx); err != nil {
		log.Error("Resources could not be released", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Server stopped", map[string]interface{}{})
}
