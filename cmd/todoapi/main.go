package main

import (
	"context"
	"crypto/rand"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mstrand/todoapi/internal/database"
	"github.com/mstrand/todoapi/internal/logging"
	"github.com/mstrand/todoapi/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := logging.Setup(os.Getenv("TODO_LOG_LEVEL"))

	port := os.Getenv("TODO_PORT")
	if port == "" {
		port = "3000"
	}

	dbPath := os.Getenv("TODO_DB_PATH")
	if dbPath == "" {
		dbPath = "todo.db"
	}

	secret := []byte(os.Getenv("TODO_TOKEN_SECRET"))
	if len(secret) == 0 {
		// Tokens signed with an ephemeral secret die with the process.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatalf("generate token secret: %v", err)
		}
		logger.Warn("TODO_TOKEN_SECRET not set, using an ephemeral secret; tokens will not survive restarts")
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	srv := server.New(db, secret, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("todo API listening", "port", port, "db", dbPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
