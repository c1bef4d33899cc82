/**
 * @description
 * This file sets up the HTTP router using go-chi/chi. It defines the API
 * endpoints under the versioned prefix, associates them with their handlers,
 * and applies middleware for logging, panic recovery, timeouts, CORS, and
 * authentication.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers groups the endpoint handlers mounted by the router.
type Handlers struct {
	Auth         *AuthHandlers
	Clients      *ClientHandlers
	Accounts     *AccountHandlers
	Transactions *TransactionHandlers
}

// NewRouter creates a new Chi router and registers all routes under the
// given API prefix.
func NewRouter(prefix string, jwtSecret []byte, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	r.Route(prefix, func(r chi.Router) {
		// Public authentication endpoints.
		r.Post("/auth/register", h.Auth.RegisterHandler)
		r.Post("/auth/login", h.Auth.LoginHandler)

		// Everything else requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtSecret))

			r.Get("/user", h.Auth.CurrentUserHandler)

			r.Get("/clients", h.Clients.ListClientsHandler)
			r.Post("/clients", h.Clients.CreateClientHandler)
			r.Get("/clients/{clientID}", h.Clients.GetClientHandler)
			r.Put("/clients/{clientID}", h.Clients.UpdateClientHandler)
			r.Delete("/clients/{clientID}", h.Clients.DeleteClientHandler)

			r.Get("/comptes", h.Accounts.ListAccountsHandler)
			r.Post("/comptes", h.Accounts.CreateAccountHandler)
			r.Get("/comptes/{accountID}", h.Accounts.GetAccountHandler)
			r.Put("/comptes/{accountID}", h.Accounts.UpdateAccountHandler)
			r.Delete("/comptes/{accountID}", h.Accounts.DeleteAccountHandler)
			r.Get("/comptes/{accountID}/solde", h.Accounts.GetBalanceHandler)

			r.Get("/comptes/{accountID}/transactions", h.Transactions.ListTransactionsHandler)
			r.Post("/comptes/{accountID}/transactions", h.Transactions.CreateTransactionHandler)
		})
	})

	return r
}
