package service

// In-memory repository stubs shared by the service tests. They return
// gorm.ErrRecordNotFound / gorm.ErrDuplicatedKey the way the real GORM
// repositories do so error mapping is exercised for real.

import (
	"context"
	"sort"
	"strings"
	"time"

	"pharmapos/internal/model"
	"pharmapos/internal/repository"
	"pharmapos/internal/sequence"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Medicines ─────────────────────────────────────────────────────────────────

type stubMedicineRepo struct {
	medicines []*model.Medicine
}

func (r *stubMedicineRepo) Create(_ context.Context, m *model.Medicine) error {
	for _, existing := range r.medicines {
		if existing.MedicineID == m.MedicineID || existing.BatchNumber == m.BatchNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	r.medicines = append(r.medicines, m)
	return nil
}

func (r *stubMedicineRepo) FindByMedicineID(_ context.Context, medicineID string) (*model.Medicine, error) {
	for _, m := range r.medicines {
		if m.MedicineID == medicineID {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMedicineRepo) FindByNameFold(_ context.Context, name string) (*model.Medicine, error) {
	for _, m := range r.medicines {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMedicineRepo) FindLast(_ context.Context) (*model.Medicine, error) {
	if len(r.medicines) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.medicines[len(r.medicines)-1], nil
}

func (r *stubMedicineRepo) List(_ context.Context) ([]model.Medicine, error) {
	out := make([]model.Medicine, 0, len(r.medicines))
	for _, m := range r.medicines {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MedicineID < out[j].MedicineID })
	return out, nil
}

func (r *stubMedicineRepo) Update(_ context.Context, m *model.Medicine) error {
	for i, existing := range r.medicines {
		if existing.MedicineID == m.MedicineID {
			r.medicines[i] = m
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubMedicineRepo) DeleteByMedicineID(_ context.Context, medicineID string) (bool, error) {
	for i, m := range r.medicines {
		if m.MedicineID == medicineID {
			r.medicines = append(r.medicines[:i], r.medicines[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ── Purchase ledger ───────────────────────────────────────────────────────────

type stubPurchaseRepo struct {
	records []model.PurchaseRecord
}

func (r *stubPurchaseRepo) Append(_ context.Context, rec *model.PurchaseRecord) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	r.records = append(r.records, *rec)
	return nil
}

func (r *stubPurchaseRepo) ListNewestFirst(_ context.Context) ([]model.PurchaseRecord, error) {
	out := make([]model.PurchaseRecord, len(r.records))
	for i := range r.records {
		out[i] = r.records[len(r.records)-1-i]
	}
	return out, nil
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers []*model.Supplier
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	for _, existing := range r.suppliers {
		if existing.SupplierID == s.SupplierID {
			return gorm.ErrDuplicatedKey
		}
	}
	s.ID = uuid.New()
	r.suppliers = append(r.suppliers, s)
	return nil
}

func (r *stubSupplierRepo) FindBySupplierID(_ context.Context, supplierID string) (*model.Supplier, error) {
	for _, s := range r.suppliers {
		if s.SupplierID == supplierID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSupplierRepo) FindLast(_ context.Context) (*model.Supplier, error) {
	if len(r.suppliers) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.suppliers[len(r.suppliers)-1], nil
}

func (r *stubSupplierRepo) List(_ context.Context, search string) ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		if search != "" && !supplierMatches(s, search) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func supplierMatches(s *model.Supplier, search string) bool {
	search = strings.ToLower(search)
	if strings.Contains(strings.ToLower(s.SupplierID), search) ||
		strings.Contains(strings.ToLower(s.Name), search) {
		return true
	}
	return s.Email != nil && strings.Contains(strings.ToLower(*s.Email), search)
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	for i, existing := range r.suppliers {
		if existing.SupplierID == s.SupplierID {
			r.suppliers[i] = s
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubSupplierRepo) DeleteBySupplierID(_ context.Context, supplierID string) (bool, error) {
	for i, s := range r.suppliers {
		if s.SupplierID == supplierID {
			r.suppliers = append(r.suppliers[:i], r.suppliers[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ── Supplier orders ───────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders []*model.SupplierOrder
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.SupplierOrder) error {
	lastID := ""
	for _, existing := range r.orders {
		if existing.OrderID > lastID {
			lastID = existing.OrderID
		}
	}
	o.ID = uuid.New()
	o.OrderID = sequence.OrderID.Next(lastID)
	r.orders = append(r.orders, o)
	return nil
}

func (r *stubOrderRepo) FindByOrderID(_ context.Context, orderID string) (*model.SupplierOrder, error) {
	for _, o := range r.orders {
		if o.OrderID == orderID {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOrderRepo) List(_ context.Context) ([]model.SupplierOrder, error) {
	out := make([]model.SupplierOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *model.SupplierOrder, _ bool) error {
	for i, existing := range r.orders {
		if existing.OrderID == o.OrderID {
			r.orders[i] = o
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubOrderRepo) DeleteByOrderID(_ context.Context, orderID string) (bool, error) {
	for i, o := range r.orders {
		if o.OrderID == orderID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ── Sales ─────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales   []*model.Sale
	nextSeq int
}

func (r *stubSaleRepo) Create(_ context.Context, s *model.Sale) error {
	r.nextSeq++
	s.ID = uuid.New()
	s.InvoiceID = sequence.InvoiceID.Render(r.nextSeq)
	r.sales = append(r.sales, s)
	return nil
}

func (r *stubSaleRepo) FindByInvoiceID(_ context.Context, invoiceID string) (*model.Sale, error) {
	for _, s := range r.sales {
		if s.InvoiceID == invoiceID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) List(_ context.Context) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSaleRepo) ListBetween(_ context.Context, from, to time.Time) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		if !s.OrderDateTime.Before(from) && !s.OrderDateTime.After(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) Update(_ context.Context, s *model.Sale, _ bool) error {
	for i, existing := range r.sales {
		if existing.InvoiceID == s.InvoiceID {
			r.sales[i] = s
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) DeleteByInvoiceID(_ context.Context, invoiceID string) (bool, error) {
	for i, s := range r.sales {
		if s.InvoiceID == invoiceID {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSaleRepo) MonthlyTotals(_ context.Context, from, to time.Time) ([]repository.MonthlyTotal, error) {
	byMonth := make(map[int]decimal.Decimal)
	for _, s := range r.sales {
		if s.OrderDateTime.Before(from) || s.OrderDateTime.After(to) {
			continue
		}
		month := int(s.OrderDateTime.Month())
		for _, item := range s.Items {
			line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.QtySold)))
			byMonth[month] = byMonth[month].Add(line)
		}
	}
	out := make([]repository.MonthlyTotal, 0, len(byMonth))
	for m, total := range byMonth {
		out = append(out, repository.MonthlyTotal{Month: m, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *stubSaleRepo) MedicineTotals(_ context.Context) ([]repository.MedicineTotal, error) {
	type agg struct {
		qty     int
		revenue decimal.Decimal
	}
	byName := make(map[string]*agg)
	for _, s := range r.sales {
		for _, item := range s.Items {
			a, ok := byName[item.Name]
			if !ok {
				a = &agg{}
				byName[item.Name] = a
			}
			a.qty += item.QtySold
			a.revenue = a.revenue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.QtySold))))
		}
	}
	out := make([]repository.MedicineTotal, 0, len(byName))
	for name, a := range byName {
		out = append(out, repository.MedicineTotal{Name: name, Quantity: a.qty, Revenue: a.revenue})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	return out, nil
}

func (r *stubSaleRepo) SalesActivityByMedicine(_ context.Context) ([]repository.SalesActivity, error) {
	byMedicine := make(map[string]*repository.SalesActivity)
	for _, s := range r.sales {
		for _, item := range s.Items {
			a, ok := byMedicine[item.MedicineID]
			if !ok {
				byMedicine[item.MedicineID] = &repository.SalesActivity{
					MedicineID: item.MedicineID,
					FirstSale:  s.OrderDateTime,
					LastSale:   s.OrderDateTime,
					TotalQty:   item.QtySold,
				}
				continue
			}
			if s.OrderDateTime.Before(a.FirstSale) {
				a.FirstSale = s.OrderDateTime
			}
			if s.OrderDateTime.After(a.LastSale) {
				a.LastSale = s.OrderDateTime
			}
			a.TotalQty += item.QtySold
		}
	}
	out := make([]repository.SalesActivity, 0, len(byMedicine))
	for _, a := range byMedicine {
		out = append(out, *a)
	}
	return out, nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users []*model.User
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
		if existing.CashierID != nil && u.CashierID != nil && *existing.CashierID == *u.CashierID {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.users = append(r.users, u)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByCashierID(_ context.Context, cashierID string) (*model.User, error) {
	for _, u := range r.users {
		if u.CashierID != nil && *u.CashierID == cashierID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindLastCashier(_ context.Context) (*model.User, error) {
	for i := len(r.users) - 1; i >= 0; i-- {
		if r.users[i].Role == model.RoleCashier && r.users[i].CashierID != nil {
			return r.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Predictions ───────────────────────────────────────────────────────────────

type stubPredictionRepo struct {
	rows []model.RestockPrediction
}

func (r *stubPredictionRepo) ReplaceAll(_ context.Context, rows []model.RestockPrediction) error {
	r.rows = rows
	return nil
}

func (r *stubPredictionRepo) List(_ context.Context) ([]model.RestockPrediction, error) {
	out := make([]model.RestockPrediction, len(r.rows))
	copy(out, r.rows)
	sort.Slice(out, func(i, j int) bool { return out[i].DaysToStockout < out[j].DaysToStockout })
	return out, nil
}
