package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"pharmapos/internal/dto"
	"pharmapos/internal/model"
	"pharmapos/internal/repository"
	"pharmapos/internal/sequence"
	"pharmapos/internal/worker"

	"gorm.io/gorm"
)

// MedicineService enforces the medicine lifecycle rules: id/batch
// allocation, date-ordering validation, name uniqueness, and the
// append-only purchase ledger mirroring every stock-affecting change.
type MedicineService interface {
	Create(ctx context.Context, req dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	NextIDs(ctx context.Context) (*dto.NextIDsResponse, error)
	GetByID(ctx context.Context, medicineID string) (*dto.MedicineResponse, error)
	List(ctx context.Context) ([]dto.MedicineResponse, error)
	Update(ctx context.Context, medicineID string, req dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	Delete(ctx context.Context, medicineID string) error
	SearchByName(ctx context.Context, name string) (*dto.MedicineLookupResponse, error)
	ListNames(ctx context.Context) ([]dto.MedicineNameItem, error)
	PurchaseHistory(ctx context.Context) ([]dto.PurchaseRecordResponse, error)
}

type medicineService struct {
	repo       repository.MedicineRepository
	ledger     repository.PurchaseRepository
	dispatcher *worker.Dispatcher
	now        func() time.Time
}

func NewMedicineService(repo repository.MedicineRepository, ledger repository.PurchaseRepository, dispatcher *worker.Dispatcher) MedicineService {
	return &medicineService{repo: repo, ledger: ledger, dispatcher: dispatcher, now: time.Now}
}

func (s *medicineService) Create(ctx context.Context, req dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	// Name uniqueness is case-insensitive exact match.
	if existing, err := s.repo.FindByNameFold(ctx, strings.TrimSpace(req.Name)); err == nil && existing != nil {
		return nil, &ConflictError{Field: "name", Message: "a medicine with this name already exists"}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	restocked, expiry, err := s.validateDates(req.RestockedDate, req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if req.Price.Sign() <= 0 {
		return nil, invalid("price", "price must be positive")
	}

	medicineID, batchNumber, err := s.nextIDs(ctx)
	if err != nil {
		return nil, err
	}

	m := &model.Medicine{
		MedicineID:    medicineID,
		Name:          strings.TrimSpace(req.Name),
		BatchNumber:   batchNumber,
		ExpiryDate:    expiry,
		Price:         req.Price,
		Quantity:      req.Quantity,
		RestockedDate: restocked,
		SupplierID:    req.SupplierID,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		// The read-last allocator raced another creation and lost; the
		// unique index is the backstop and the caller can simply retry.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{
				Field:     "medicineId",
				Message:   "duplicate medicine id, please retry",
				Retryable: true,
			}
		}
		return nil, err
	}

	if err := s.ledger.Append(ctx, &model.PurchaseRecord{
		MedicineID:    m.MedicineID,
		Quantity:      m.Quantity,
		Price:         m.Price,
		ActionType:    model.ActionNew,
		LastStockDate: m.RestockedDate,
		ExpiryDate:    m.ExpiryDate,
	}); err != nil {
		return nil, err
	}

	s.notifyRestock(ctx)
	return medicineToResponse(m), nil
}

func (s *medicineService) NextIDs(ctx context.Context) (*dto.NextIDsResponse, error) {
	medicineID, batchNumber, err := s.nextIDs(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.NextIDsResponse{MedicineID: medicineID, BatchNumber: batchNumber}, nil
}

// nextIDs derives both identifiers from the single most recently created
// record. Not safe against concurrent callers; see Create.
func (s *medicineService) nextIDs(ctx context.Context) (string, string, error) {
	last, err := s.repo.FindLast(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sequence.MedicineID.Next(""), sequence.BatchNumber.Next(""), nil
		}
		return "", "", err
	}
	return sequence.MedicineID.Next(last.MedicineID), sequence.BatchNumber.Next(last.BatchNumber), nil
}

func (s *medicineService) GetByID(ctx context.Context, medicineID string) (*dto.MedicineResponse, error) {
	m, err := s.repo.FindByMedicineID(ctx, medicineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return medicineToResponse(m), nil
}

func (s *medicineService) List(ctx context.Context) ([]dto.MedicineResponse, error) {
	medicines, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MedicineResponse, 0, len(medicines))
	for i := range medicines {
		resp = append(resp, *medicineToResponse(&medicines[i]))
	}
	return resp, nil
}

func (s *medicineService) Update(ctx context.Context, medicineID string, req dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	m, err := s.repo.FindByMedicineID(ctx, medicineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	restocked, expiry, err := s.validateDates(req.RestockedDate, req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if req.Price.Sign() <= 0 {
		return nil, invalid("price", "price must be positive")
	}

	// The ledger entry is written before the update is applied: the
	// audit trail stays complete even if the second write fails.
	if err := s.ledger.Append(ctx, &model.PurchaseRecord{
		MedicineID:    m.MedicineID,
		Quantity:      req.Quantity,
		Price:         req.Price,
		ActionType:    model.ActionUpdate,
		LastStockDate: restocked,
		ExpiryDate:    expiry,
	}); err != nil {
		return nil, err
	}

	// medicineId and batchNumber are immutable: whatever the payload
	// carried, the stored values win.
	m.Name = strings.TrimSpace(req.Name)
	m.ExpiryDate = expiry
	m.Price = req.Price
	m.Quantity = req.Quantity
	m.RestockedDate = restocked
	m.SupplierID = req.SupplierID

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	s.notifyRestock(ctx)
	return medicineToResponse(m), nil
}

// Delete is unconditional and writes no ledger entry, mirroring the
// create/update asymmetry of the purchase history.
func (s *medicineService) Delete(ctx context.Context, medicineID string) error {
	deleted, err := s.repo.DeleteByMedicineID(ctx, medicineID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.notifyRestock(ctx)
	return nil
}

func (s *medicineService) SearchByName(ctx context.Context, name string) (*dto.MedicineLookupResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "medicine name is required")
	}
	m, err := s.repo.FindByNameFold(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dto.MedicineLookupResponse{MedicineID: m.MedicineID, Name: m.Name, Price: m.Price}, nil
}

func (s *medicineService) ListNames(ctx context.Context) ([]dto.MedicineNameItem, error) {
	medicines, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MedicineNameItem, 0, len(medicines))
	for _, m := range medicines {
		items = append(items, dto.MedicineNameItem{ID: m.MedicineID, Name: m.Name})
	}
	return items, nil
}

func (s *medicineService) PurchaseHistory(ctx context.Context) ([]dto.PurchaseRecordResponse, error) {
	records, err := s.ledger.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PurchaseRecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, dto.PurchaseRecordResponse{
			MedicineID:    rec.MedicineID,
			Quantity:      rec.Quantity,
			Price:         rec.Price,
			ActionType:    rec.ActionType,
			LastStockDate: formatDate(rec.LastStockDate),
			ExpiryDate:    formatDate(rec.ExpiryDate),
			CreatedAt:     rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

// validateDates applies the lifecycle rules in order; the first failing
// rule wins and is reported with its field name.
func (s *medicineService) validateDates(restockedStr, expiryStr string) (restocked, expiry time.Time, err error) {
	restocked, err = parseDate("restockedDate", restockedStr)
	if err != nil {
		return
	}
	expiry, err = parseDate("expiryDate", expiryStr)
	if err != nil {
		return
	}
	today := midnight(s.now())
	if restocked.After(today) {
		err = invalid("restockedDate", "restocked date cannot be in the future")
		return
	}
	if !expiry.After(today) {
		err = invalid("expiryDate", "expiry date must be in the future")
		return
	}
	if !restocked.Before(expiry) {
		err = invalid("restockedDate", "restocked date must be before expiry date")
		return
	}
	return
}

// notifyRestock queues a prediction recompute; best-effort, fire and forget.
func (s *medicineService) notifyRestock(ctx context.Context) {
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRestockRecompute(ctx)
	}
}

func medicineToResponse(m *model.Medicine) *dto.MedicineResponse {
	return &dto.MedicineResponse{
		MedicineID:    m.MedicineID,
		Name:          m.Name,
		BatchNumber:   m.BatchNumber,
		ExpiryDate:    formatDate(m.ExpiryDate),
		Price:         m.Price,
		Quantity:      m.Quantity,
		RestockedDate: formatDate(m.RestockedDate),
		SupplierID:    m.SupplierID,
	}
}
