package service

import (
	"context"
	"errors"
	"time"

	"pharmapos/internal/dto"
	"pharmapos/internal/model"
	"pharmapos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService enforces supplier-order consistency: the derived total is
// always recomputed from line items, and status transitions run through
// a server-side state machine instead of trusting the caller.
type OrderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetByID(ctx context.Context, orderID string) (*dto.OrderResponse, error)
	List(ctx context.Context) ([]dto.OrderResponse, error)
	Update(ctx context.Context, orderID string, req dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	Delete(ctx context.Context, orderID string) error
}

type orderService struct {
	repo repository.OrderRepository
	now  func() time.Time
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo, now: time.Now}
}

// allowedTransition is the order status machine. Same-status updates
// always pass; Completed and Cancelled are terminal.
func allowedTransition(current, next string) bool {
	if current == next {
		return true
	}
	switch current {
	case model.StatusPending:
		return next == model.StatusApproved || next == model.StatusCompleted || next == model.StatusCancelled
	case model.StatusApproved:
		return next == model.StatusCompleted || next == model.StatusCancelled
	default:
		return false
	}
}

func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(req.Medicines) == 0 {
		return nil, invalid("medicines", "at least one medicine must be included in the order")
	}

	orderDate := midnight(s.now())
	if req.OrderDate != "" {
		var err error
		if orderDate, err = parseDate("orderDate", req.OrderDate); err != nil {
			return nil, err
		}
	}
	expected, err := parseDate("expectedDeliveryDate", req.ExpectedDeliveryDate)
	if err != nil {
		return nil, err
	}

	status := req.OrderStatus
	if status == "" {
		status = model.StatusPending
	}

	o := &model.SupplierOrder{
		SupplierID:           req.SupplierID,
		OrderDate:            orderDate,
		ExpectedDeliveryDate: expected,
		OrderStatus:          model.StatusPending,
	}
	o.Items, o.TotalAmount = buildOrderItems(req.Medicines)

	// A non-default initial status still has to be a legal move from
	// Pending, completion rules included.
	if status != model.StatusPending {
		if err := s.applyStatus(o, status); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, o); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Field: "orderId", Message: "duplicate order id"}
		}
		return nil, err
	}
	return orderToResponse(o), nil
}

func (s *orderService) GetByID(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	o, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return orderToResponse(o), nil
}

func (s *orderService) List(ctx context.Context) ([]dto.OrderResponse, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, *orderToResponse(&orders[i]))
	}
	return resp, nil
}

func (s *orderService) Update(ctx context.Context, orderID string, req dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	o, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.ExpectedDeliveryDate != nil {
		expected, err := parseDate("expectedDeliveryDate", *req.ExpectedDeliveryDate)
		if err != nil {
			return nil, err
		}
		o.ExpectedDeliveryDate = expected
	}
	if req.ActualDeliveryDate != nil {
		actual, err := parseDate("actualDeliveryDate", *req.ActualDeliveryDate)
		if err != nil {
			return nil, err
		}
		o.ActualDeliveryDate = &actual
	}

	// Absent line items leave the stored items and total untouched;
	// present line items replace them and the total is recomputed.
	replaceItems := len(req.Medicines) > 0
	if replaceItems {
		o.Items, o.TotalAmount = buildOrderItems(req.Medicines)
	}

	if req.OrderStatus != nil {
		if err := s.applyStatus(o, *req.OrderStatus); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, o, replaceItems); err != nil {
		return nil, err
	}
	return orderToResponse(o), nil
}

// applyStatus validates and applies a status change against the state
// machine and the completion date rules.
func (s *orderService) applyStatus(o *model.SupplierOrder, next string) error {
	if !allowedTransition(o.OrderStatus, next) {
		return invalid("orderStatus", "illegal status transition from "+o.OrderStatus+" to "+next)
	}
	if next == model.StatusCompleted && o.OrderStatus != model.StatusCompleted {
		today := midnight(s.now())
		if o.ExpectedDeliveryDate.After(today) {
			return invalid("expectedDeliveryDate", "order cannot be completed before its expected delivery date")
		}
		if o.ActualDeliveryDate == nil {
			o.ActualDeliveryDate = &today
		}
	}
	o.OrderStatus = next
	return nil
}

func (s *orderService) Delete(ctx context.Context, orderID string) error {
	deleted, err := s.repo.DeleteByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// buildOrderItems maps the request lines and sums their amounts. Any
// client-supplied grand total is ignored.
func buildOrderItems(lines []dto.OrderItemInput) ([]model.SupplierOrderItem, decimal.Decimal) {
	items := make([]model.SupplierOrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		items = append(items, model.SupplierOrderItem{
			MedicineID:       line.MedicineID,
			OrderedQuantity:  line.OrderedQuantity,
			ReceivedQuantity: line.ReceivedQuantity,
			Amount:           line.TotalAmount,
		})
		total = total.Add(line.TotalAmount)
	}
	return items, total
}

func orderToResponse(o *model.SupplierOrder) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			MedicineID:       item.MedicineID,
			OrderedQuantity:  item.OrderedQuantity,
			ReceivedQuantity: item.ReceivedQuantity,
			TotalAmount:      item.Amount,
		})
	}
	var actual *string
	if o.ActualDeliveryDate != nil {
		v := formatDate(*o.ActualDeliveryDate)
		actual = &v
	}
	return &dto.OrderResponse{
		OrderID:              o.OrderID,
		SupplierID:           o.SupplierID,
		OrderDate:            formatDate(o.OrderDate),
		ExpectedDeliveryDate: formatDate(o.ExpectedDeliveryDate),
		ActualDeliveryDate:   actual,
		Medicines:            items,
		OrderStatus:          o.OrderStatus,
		TotalAmount:          o.TotalAmount,
	}
}
