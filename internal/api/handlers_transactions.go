package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/app"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
)

// TransactionHandlers holds the services used by the transaction endpoints.
type TransactionHandlers struct {
	transactions *app.TransactionService
}

// NewTransactionHandlers creates a new TransactionHandlers.
func NewTransactionHandlers(transactions *app.TransactionService) *TransactionHandlers {
	return &TransactionHandlers{transactions: transactions}
}

type createTransactionRequest struct {
	Type            domain.TransactionType   `json:"type"`
	Amount          int64                    `json:"montant"`
	Currency        string                   `json:"devise"`
	Description     string                   `json:"description"`
	Status          domain.TransactionStatus `json:"statut"`
	TransactionDate *time.Time               `json:"dateTransaction"`
}

// CreateTransactionHandler handles POST /comptes/{accountID}/transactions.
func (h *TransactionHandlers) CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	tx, err := h.transactions.CreateTransaction(r.Context(), chi.URLParam(r, "accountID"), app.CreateTransactionInput{
		Type:            req.Type,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Description:     req.Description,
		Status:          req.Status,
		TransactionDate: req.TransactionDate,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, tx, "Transaction created successfully")
}

// ListTransactionsHandler handles GET /comptes/{accountID}/transactions.
func (h *TransactionHandlers) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactions.ListTransactions(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	respondSuccess(w, http.StatusOK, transactions, "Transactions retrieved successfully")
}
