package service

import (
	"context"
	"errors"
	"time"

	"pharmapos/internal/dto"
	"pharmapos/internal/model"
	"pharmapos/internal/repository"
	"pharmapos/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService records point-of-sale transactions. Line totals are always
// recomputed as qty_sold * unitprice; whatever the client sent is ignored.
type SaleService interface {
	Create(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	GetByID(ctx context.Context, invoiceID string) (*dto.SaleResponse, error)
	List(ctx context.Context) ([]dto.SaleResponse, error)
	ListToday(ctx context.Context) ([]dto.SaleResponse, error)
	Update(ctx context.Context, invoiceID string, req dto.UpdateSaleRequest) (*dto.SaleResponse, error)
	Delete(ctx context.Context, invoiceID string) error
}

type saleService struct {
	repo       repository.SaleRepository
	dispatcher *worker.Dispatcher
	now        func() time.Time
}

func NewSaleService(repo repository.SaleRepository, dispatcher *worker.Dispatcher) SaleService {
	return &saleService{repo: repo, dispatcher: dispatcher, now: time.Now}
}

func (s *saleService) Create(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(req.Medicines) == 0 {
		return nil, invalid("medicines", "at least one medicine must be included in the sale")
	}
	if err := validatePaymentType(req.PaymentType); err != nil {
		return nil, err
	}
	items, err := buildSaleItems(req.Medicines)
	if err != nil {
		return nil, err
	}

	sale := &model.Sale{
		OrderDateTime: s.now().UTC(),
		PaymentType:   req.PaymentType,
		CashierID:     req.CashierID,
		Items:         items,
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}

	// Stock levels changed as far as the predictor is concerned.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRestockRecompute(ctx)
	}
	return saleToResponse(sale), nil
}

func (s *saleService) GetByID(ctx context.Context, invoiceID string) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) List(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return salesToResponses(sales), nil
}

// ListToday returns the sales whose timestamp falls within the current
// UTC calendar day.
func (s *saleService) ListToday(ctx context.Context) ([]dto.SaleResponse, error) {
	from := midnight(s.now())
	to := from.Add(24*time.Hour - time.Nanosecond)
	sales, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return salesToResponses(sales), nil
}

func (s *saleService) Update(ctx context.Context, invoiceID string, req dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.PaymentType != nil {
		if err := validatePaymentType(*req.PaymentType); err != nil {
			return nil, err
		}
		sale.PaymentType = *req.PaymentType
	}
	if req.CashierID != nil {
		sale.CashierID = *req.CashierID
	}

	replaceItems := len(req.Medicines) > 0
	if replaceItems {
		items, err := buildSaleItems(req.Medicines)
		if err != nil {
			return nil, err
		}
		sale.Items = items
	}

	if err := s.repo.Update(ctx, sale, replaceItems); err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRestockRecompute(ctx)
	}
	return saleToResponse(sale), nil
}

func (s *saleService) Delete(ctx context.Context, invoiceID string) error {
	deleted, err := s.repo.DeleteByInvoiceID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRestockRecompute(ctx)
	}
	return nil
}

func validatePaymentType(pt string) error {
	if pt != model.PaymentCash && pt != model.PaymentCredit {
		return invalid("payment_type", "payment type must be Cash or Credit")
	}
	return nil
}

func buildSaleItems(lines []dto.SaleItemInput) ([]model.SaleItem, error) {
	items := make([]model.SaleItem, 0, len(lines))
	for _, line := range lines {
		if line.QtySold <= 0 {
			return nil, invalid("qty_sold", "quantity sold must be positive")
		}
		if line.UnitPrice.Sign() <= 0 {
			return nil, invalid("unitprice", "unit price must be positive")
		}
		items = append(items, model.SaleItem{
			MedicineID: line.MedicineID,
			Name:       line.Name,
			QtySold:    line.QtySold,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.UnitPrice.Mul(decimal.NewFromInt(int64(line.QtySold))),
		})
	}
	return items, nil
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, dto.SaleItemResponse{
			MedicineID: item.MedicineID,
			Name:       item.Name,
			QtySold:    item.QtySold,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}
	return &dto.SaleResponse{
		InvoiceID:     sale.InvoiceID,
		Medicines:     items,
		OrderDateTime: sale.OrderDateTime.UTC().Format(time.RFC3339),
		PaymentType:   sale.PaymentType,
		CashierID:     sale.CashierID,
	}
}

func salesToResponses(sales []model.Sale) []dto.SaleResponse {
	resp := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		resp = append(resp, *saleToResponse(&sales[i]))
	}
	return resp
}
