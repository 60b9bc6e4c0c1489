// Package main provides a demo AG-UI agent server for exercising the client
// runtime without a real agent backend. It accepts RunAgentInput over POST
// and streams protocol events back via Server-Sent Events: the last user
// message is echoed as a streaming assistant reply, tools advertised by the
// client are invoked on request, and a per-thread message counter is kept
// in shared state.
//
// Configuration is via environment variables:
//
//	AGUI_PORT - Server port (default: 8000)
//
// Usage:
//
//	go run ./cmd/aguiserver
//	AGUI_ENDPOINT=http://localhost:8000/api/agent go run ./cmd/aguichat
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	port := os.Getenv("AGUI_PORT")
	if port == "" {
		port = "8000"
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mux := http.NewServeMux()
	mux.Handle("/api/agent", corsMiddleware(NewEchoHandler(logger)))
	mux.HandleFunc("/health", healthHandler)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE needs no write timeout
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("demo agent server starting",
		"endpoint", "POST http://localhost:"+port+"/api/agent",
		"health", "GET http://localhost:"+port+"/health")

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
