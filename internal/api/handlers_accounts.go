/**
 * @description
 * HTTP handlers for bank account management. Responses use the account read
 * model, whose balance field is always derived from the transaction history
 * at request time.
 */
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/app"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
)

// AccountHandlers holds the services used by the account endpoints.
type AccountHandlers struct {
	accounts *app.AccountService
	ledger   *app.Ledger
}

// NewAccountHandlers creates a new AccountHandlers.
func NewAccountHandlers(accounts *app.AccountService, ledger *app.Ledger) *AccountHandlers {
	return &AccountHandlers{accounts: accounts, ledger: ledger}
}

type createAccountRequest struct {
	ClientID      string             `json:"client_id"`
	Type          domain.AccountType `json:"type"`
	Currency      string             `json:"devise"`
	Holder        string             `json:"titulaire"`
	AccountNumber string             `json:"numeroCompte"`
	CreatedDate   string             `json:"dateCreation"`
}

type updateAccountRequest struct {
	Holder      *string               `json:"titulaire"`
	Type        *domain.AccountType   `json:"type"`
	Currency    *string               `json:"devise"`
	Status      *domain.AccountStatus `json:"statut"`
	BlockReason *string               `json:"motifBlocage"`
}

// CreateAccountHandler handles POST /comptes.
func (h *AccountHandlers) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	input := app.CreateAccountInput{
		ClientID:      req.ClientID,
		Type:          req.Type,
		Currency:      req.Currency,
		Holder:        req.Holder,
		AccountNumber: req.AccountNumber,
	}
	if req.CreatedDate != "" {
		date, err := time.Parse("2006-01-02", req.CreatedDate)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "Validation failed",
				map[string]string{"dateCreation": "must be a date in YYYY-MM-DD format"})
			return
		}
		input.CreatedDate = &date
	}

	view, err := h.accounts.CreateAccount(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, view, "Account created successfully")
}

// ListAccountsHandler handles GET /comptes.
func (h *AccountHandlers) ListAccountsHandler(w http.ResponseWriter, r *http.Request) {
	views, err := h.accounts.ListAccounts(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if views == nil {
		views = []domain.AccountView{}
	}
	respondSuccess(w, http.StatusOK, views, "Comptes retrieved successfully")
}

// GetAccountHandler handles GET /comptes/{accountID}.
func (h *AccountHandlers) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.accounts.GetAccount(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, view, "Account retrieved successfully")
}

// GetBalanceHandler handles GET /comptes/{accountID}/solde. The balance is
// recomputed from the full transaction set on every call.
func (h *AccountHandlers) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	balance, err := h.ledger.ComputeBalance(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{"solde": balance}, "Balance computed successfully")
}

// UpdateAccountHandler handles PUT /comptes/{accountID}.
func (h *AccountHandlers) UpdateAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	view, err := h.accounts.UpdateAccount(r.Context(), chi.URLParam(r, "accountID"), app.UpdateAccountInput{
		Holder:      req.Holder,
		Type:        req.Type,
		Currency:    req.Currency,
		Status:      req.Status,
		BlockReason: req.BlockReason,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, view, "Account updated successfully")
}

// DeleteAccountHandler handles DELETE /comptes/{accountID}.
func (h *AccountHandlers) DeleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteAccount(r.Context(), chi.URLParam(r, "accountID")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil, "Account deleted successfully")
}
