/**
 * @description
 * HTTP handlers for client record management: create, list with search and
 * pagination, fetch, partial update, and delete.
 */
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/app"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/store"
)

// ClientHandlers holds the services used by the client endpoints.
type ClientHandlers struct {
	clients *app.ClientService
}

// NewClientHandlers creates a new ClientHandlers.
func NewClientHandlers(clients *app.ClientService) *ClientHandlers {
	return &ClientHandlers{clients: clients}
}

type createClientRequest struct {
	LastName   string `json:"nom"`
	FirstName  string `json:"prenom"`
	Gender     string `json:"sexe"`
	Phone      string `json:"telephone"`
	NationalID string `json:"cni"`
	Address    string `json:"adresse"`
}

type updateClientRequest struct {
	LastName  *string              `json:"nom"`
	FirstName *string              `json:"prenom"`
	Gender    *string              `json:"sexe"`
	Phone     *string              `json:"telephone"`
	Address   *string              `json:"adresse"`
	Status    *domain.ClientStatus `json:"statut"`
}

// CreateClientHandler handles POST /clients. The authenticated user becomes
// the owner of the record.
func (h *ClientHandlers) CreateClientHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	client, err := h.clients.CreateClient(r.Context(), actorID, app.CreateClientInput{
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		Gender:     req.Gender,
		Phone:      req.Phone,
		NationalID: req.NationalID,
		Address:    req.Address,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, client, "Client created successfully")
}

// ListClientsHandler handles GET /clients with optional search and
// pagination query parameters.
func (h *ClientHandlers) ListClientsHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	clients, err := h.clients.ListClients(r.Context(), store.ClientListOptions{
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	respondSuccess(w, http.StatusOK, clients, "Clients retrieved successfully")
}

// GetClientHandler handles GET /clients/{clientID}.
func (h *ClientHandlers) GetClientHandler(w http.ResponseWriter, r *http.Request) {
	client, err := h.clients.GetClient(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, client, "Client retrieved successfully")
}

// UpdateClientHandler handles PUT /clients/{clientID}.
func (h *ClientHandlers) UpdateClientHandler(w http.ResponseWriter, r *http.Request) {
	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	client, err := h.clients.UpdateClient(r.Context(), chi.URLParam(r, "clientID"), app.UpdateClientInput{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Gender:    req.Gender,
		Phone:     req.Phone,
		Address:   req.Address,
		Status:    req.Status,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, client, "Client updated successfully")
}

// DeleteClientHandler handles DELETE /clients/{clientID}.
func (h *ClientHandlers) DeleteClientHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.clients.DeleteClient(r.Context(), chi.URLParam(r, "clientID")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil, "Client deleted successfully")
}
