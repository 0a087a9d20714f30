package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
	"github.com/transferpro/transferpro_backend/internal/dto"
)

// ClientService provides business logic for transfer clients.
type ClientService struct {
	BaseService
	clientRepo  portsrepo.ClientRepositoryFacade
	countryRepo portsrepo.CountryRepositoryFacade
	notifier    portssvc.NotificationWriterSvc
}

// NewClientService creates a new ClientService. notifier may be nil in tests.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, countryRepo portsrepo.CountryRepositoryFacade, notifier portssvc.NotificationWriterSvc) *ClientService {
	return &ClientService{clientRepo: clientRepo, countryRepo: countryRepo, notifier: notifier}
}

// CreateClient registers a new client in an active country.
func (s *ClientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	country, err := s.countryRepo.FindCountryByID(ctx, req.CountryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: country '%s' not found", apperrors.ErrValidation, req.CountryID)
		}
		return nil, fmt.Errorf("failed to validate client country: %w", err)
	}
	if !country.Active {
		return nil, fmt.Errorf("%w: country '%s' is not active", apperrors.ErrValidation, country.Name)
	}

	now := time.Now()
	client := domain.Client{
		ClientID:  uuid.NewString(),
		Name:      req.Name,
		Surname:   req.Surname,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		IDType:    req.IDType,
		IDNumber:  req.IDNumber,
		CountryID: req.CountryID,
		Active:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "failed to save client", "phone", req.Phone)
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if s.notifier != nil && client.Email != "" {
		s.notifier.NotifyEvent(ctx, domain.EventClientCreated, domain.ChannelEmail, client.Email, map[string]string{
			"clientName": client.FullName(),
		})
	}

	return &client, nil
}

// UpdateClient updates the mutable fields of a client.
func (s *ClientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, updaterUserID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client for update: %w", err)
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Surname != nil {
		client.Surname = *req.Surname
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.IDType != nil {
		client.IDType = *req.IDType
	}
	if req.IDNumber != nil {
		client.IDNumber = *req.IDNumber
	}
	if req.CountryID != nil {
		if _, err := s.countryRepo.FindCountryByID(ctx, *req.CountryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: country '%s' not found", apperrors.ErrValidation, *req.CountryID)
			}
			return nil, fmt.Errorf("failed to validate client country: %w", err)
		}
		client.CountryID = *req.CountryID
	}
	if req.Active != nil {
		client.Active = *req.Active
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = updaterUserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "failed to update client", "client_id", clientID)
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return client, nil
}

// DeactivateClient marks a client inactive.
func (s *ClientService) DeactivateClient(ctx context.Context, clientID string, requestingUserID string) error {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to get client for deactivation: %w", err)
	}
	if !client.Active {
		return nil
	}

	client.Active = false
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = requestingUserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "failed to deactivate client", "client_id", clientID)
		return fmt.Errorf("failed to deactivate client: %w", err)
	}
	return nil
}

// GetClientByID retrieves a client by its ID.
func (s *ClientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// ListClients retrieves a page of clients matching the search filter.
func (s *ClientService) ListClients(ctx context.Context, search string, limit, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 50
	}
	clients, err := s.clientRepo.ListClients(ctx, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}
