/**
 * @description
 * Business logic for client records: creation with input validation, search
 * and pagination, partial updates, and hard deletion.
 *
 * @notes
 * - The acting user's identity is threaded in explicitly as a parameter; it
 *   is never read from ambient state. The creating user becomes the owner of
 *   the client record.
 */
package app

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/store"
)

// Phone numbers follow the national mobile plan; national ids are 13 digits
// starting with 1 or 2.
var (
	phonePattern      = regexp.MustCompile(`^(70|75|76|77|78)\d{7}$`)
	nationalIDPattern = regexp.MustCompile(`^[12]\d{12}$`)
)

// ClientService provides methods for managing client records.
type ClientService struct {
	clients store.ClientRepository
}

// NewClientService creates a new instance of ClientService.
func NewClientService(clients store.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// CreateClientInput defines the input for creating a client.
type CreateClientInput struct {
	LastName   string
	FirstName  string
	Gender     string
	Phone      string
	NationalID string
	Address    string
}

// CreateClient creates a client record owned by the acting user.
func (s *ClientService) CreateClient(ctx context.Context, actorUserID string, input CreateClientInput) (*domain.Client, error) {
	if err := validateClientInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	client := &domain.Client{
		ID:         uuid.New().String(),
		UserID:     actorUserID,
		LastName:   input.LastName,
		FirstName:  input.FirstName,
		Gender:     input.Gender,
		Phone:      input.Phone,
		NationalID: input.NationalID,
		Address:    input.Address,
		Status:     domain.ClientActive,
		Metadata:   domain.Metadata{}.WithVersion(1),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.clients.CreateClient(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient returns one client by id.
func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.FindClientByID(ctx, id)
}

// ListClients returns clients matching a search term with limit/offset
// pagination.
func (s *ClientService) ListClients(ctx context.Context, opts store.ClientListOptions) ([]domain.Client, error) {
	return s.clients.ListClients(ctx, opts)
}

// UpdateClientInput defines a partial update: nil fields are left untouched.
type UpdateClientInput struct {
	LastName  *string
	FirstName *string
	Gender    *string
	Phone     *string
	Address   *string
	Status    *domain.ClientStatus
}

// UpdateClient applies a partial field replacement to a client record.
func (s *ClientService) UpdateClient(ctx context.Context, id string, input UpdateClientInput) (*domain.Client, error) {
	if input.Gender != nil && *input.Gender != "M" && *input.Gender != "F" {
		return nil, newValidationError("sexe", "gender must be M or F")
	}
	if input.Phone != nil && !phonePattern.MatchString(*input.Phone) {
		return nil, newValidationError("telephone", "phone number is not a valid mobile number")
	}
	if input.Status != nil && *input.Status != domain.ClientActive && *input.Status != domain.ClientInactive {
		return nil, newValidationError("statut", "status must be active or inactive")
	}

	client, err := s.clients.FindClientByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.LastName != nil {
		client.LastName = *input.LastName
	}
	if input.FirstName != nil {
		client.FirstName = *input.FirstName
	}
	if input.Gender != nil {
		client.Gender = *input.Gender
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.Status != nil {
		client.Status = *input.Status
	}
	client.Metadata = client.Metadata.WithVersion(client.Metadata.Version() + 1)
	client.UpdatedAt = time.Now().UTC()

	if err := s.clients.UpdateClient(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// DeleteClient hard-deletes a client record.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	return s.clients.DeleteClient(ctx, id)
}

func validateClientInput(input CreateClientInput) error {
	fields := map[string]string{}
	if input.LastName == "" {
		fields["nom"] = "last name is required"
	}
	if input.FirstName == "" {
		fields["prenom"] = "first name is required"
	}
	if input.Gender != "M" && input.Gender != "F" {
		fields["sexe"] = "gender must be M or F"
	}
	if !phonePattern.MatchString(input.Phone) {
		fields["telephone"] = "phone number is not a valid mobile number"
	}
	if !nationalIDPattern.MatchString(input.NationalID) {
		fields["cni"] = "national id must be 13 digits starting with 1 or 2"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
