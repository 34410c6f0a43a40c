package service

import (
	"context"
	"errors"
	"strings"

	"pharmapos/internal/dto"
	"pharmapos/internal/model"
	"pharmapos/internal/repository"
	"pharmapos/internal/sequence"

	"gorm.io/gorm"
)

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	GetByID(ctx context.Context, supplierID string) (*dto.SupplierResponse, error)
	List(ctx context.Context, search string) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Delete(ctx context.Context, supplierID string) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	lastID := ""
	if last, err := s.repo.FindLast(ctx); err == nil {
		lastID = last.SupplierID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sup := &model.Supplier{
		SupplierID:   sequence.SupplierID.Next(lastID),
		Name:         strings.TrimSpace(req.Name),
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		LeadTimeDays: req.LeadTimeDays,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Field: "supplierId", Message: "duplicate supplier id"}
		}
		return nil, err
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) GetByID(ctx context.Context, supplierID string) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindBySupplierID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) List(ctx context.Context, search string) ([]dto.SupplierResponse, error) {
	suppliers, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		resp = append(resp, *supplierToResponse(&suppliers[i]))
	}
	return resp, nil
}

func (s *supplierService) Update(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindBySupplierID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		sup.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		sup.Phone = req.Phone
	}
	if req.Email != nil {
		sup.Email = req.Email
	}
	if req.Address != nil {
		sup.Address = req.Address
	}
	if req.LeadTimeDays != nil {
		sup.LeadTimeDays = *req.LeadTimeDays
	}

	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) Delete(ctx context.Context, supplierID string) error {
	deleted, err := s.repo.DeleteBySupplierID(ctx, supplierID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func supplierToResponse(sup *model.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		SupplierID:   sup.SupplierID,
		Name:         sup.Name,
		Phone:        sup.Phone,
		Email:        sup.Email,
		Address:      sup.Address,
		LeadTimeDays: sup.LeadTimeDays,
	}
}
