package services

import (
	"context"
	"errors"

	"wms-backend/internal/models"
	"wms-backend/internal/repositories"
)

type ClientService struct {
	clients *repositories.ClientRepository
}

func NewClientService(clients *repositories.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) Create(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error) {
	if req.Name == "" {
		return nil, errors.New("client name is required")
	}
	if req.WeeklyFee < 0 {
		return nil, errors.New("weekly fee cannot be negative")
	}
	c := &models.Client{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		WeeklyFee: req.WeeklyFee,
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) Get(ctx context.Context, id int) (*models.Client, error) {
	return s.clients.Get(ctx, id)
}

func (s *ClientService) List(ctx context.Context) ([]*models.Client, error) {
	return s.clients.List(ctx)
}

func (s *ClientService) Update(ctx context.Context, id int, req *models.UpdateClientRequest) (*models.Client, error) {
	c, err := s.clients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, errors.New("client name is required")
	}
	if req.WeeklyFee < 0 {
		return nil, errors.New("weekly fee cannot be negative")
	}
	c.Name = req.Name
	c.Email = req.Email
	c.Phone = req.Phone
	c.WeeklyFee = req.WeeklyFee
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, id int) error {
	return s.clients.Delete(ctx, id)
}
