/**
 * @description
 * Response envelope helpers. Every endpoint answers with the same structure:
 * `{"success": true, "data": ..., "message": ...}` on success and
 * `{"success": false, "message": ..., "errors": ...}` on failure. This
 * envelope is the wire contract existing consumers were built against.
 */
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/app"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/store"
)

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

type errorEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}

// respondSuccess writes a success envelope.
func respondSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, successEnvelope{Success: true, Data: data, Message: message})
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, status int, message string, errs interface{}) {
	writeJSON(w, status, errorEnvelope{Success: false, Message: message, Errors: errs})
}

// respondServiceError maps a service error to the appropriate HTTP status:
// not-found conditions to 404, conflicts to 409, validation failures to 422,
// bad credentials to 401, and anything else to 500 without leaking internals.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *app.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusUnprocessableEntity, "Validation failed", validationErr.Fields)
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrClientNotFound),
		errors.Is(err, store.ErrAccountNotFound),
		errors.Is(err, store.ErrTransactionNotFound):
		respondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, app.ErrClientAlreadyHasAccount):
		respondError(w, http.StatusConflict, "Client already has an account", nil)
	case errors.Is(err, app.ErrAccountNumberExhausted),
		errors.Is(err, store.ErrDuplicateAccountNumber),
		errors.Is(err, store.ErrDuplicateEmail),
		errors.Is(err, store.ErrDuplicateClient):
		respondError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, app.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials", nil)
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}
