/**
 * @description
 * This is the main entry point for the banking API. Its responsibility is to
 * initialize all components and start the HTTP server.
 *
 * Key features:
 * - Loads application configuration from environment variables.
 * - Establishes and manages a connection pool to the PostgreSQL database.
 * - Wires up the ledger and application services with their repositories.
 * - Starts the HTTP server and implements graceful shutdown.
 */
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/api"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/app"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/config"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/store"
	"github.com/DaisaLuiseMonteiro/banking-api/pkg/rabbitmq"
)

func main() {
	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	// Establish database connection pool.
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to parse database URL: %v", err)
	}
	dbConfig.MaxConns = 25
	dbConfig.MaxConnLifetime = 30 * time.Minute
	dbConfig.MaxConnIdleTime = 5 * time.Minute

	dbpool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer dbpool.Close()
	log.Println("Database connection established")

	// Event publishing is optional; without a broker URL events are logged.
	var publisher rabbitmq.Publisher = rabbitmq.NoopProducer{}
	if cfg.RabbitMQURL != "" {
		producer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("WARN: RabbitMQ unavailable, events will be logged: %v", err)
		} else {
			publisher = producer
			defer producer.Close()
		}
	}

	// Set up repositories and services.
	userRepo := store.NewPostgresUserRepository(dbpool)
	clientRepo := store.NewPostgresClientRepository(dbpool)
	accountRepo := store.NewPostgresAccountRepository(dbpool)
	transactionRepo := store.NewPostgresTransactionRepository(dbpool)

	ledger := app.NewLedger(accountRepo, transactionRepo, cfg.LedgerValidatedOnly)
	authService := app.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	clientService := app.NewClientService(clientRepo)
	accountService := app.NewAccountService(accountRepo, clientRepo, ledger, publisher)
	transactionService := app.NewTransactionService(accountRepo, transactionRepo, publisher)

	router := api.NewRouter(cfg.APIPrefix, []byte(cfg.JWTSecret), api.Handlers{
		Auth:         api.NewAuthHandlers(authService),
		Clients:      api.NewClientHandlers(clientService),
		Accounts:     api.NewAccountHandlers(accountService, ledger),
		Transactions: api.NewTransactionHandlers(transactionService),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %s", err)
		}
	}()

	// Wait for termination signal for graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down banking API...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
