package repository

import (
	"context"
	"time"

	"pharmapos/internal/model"
	"pharmapos/internal/sequence"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyTotal is one month's revenue within a year (Month is 1-12;
// months with no sales are absent and zero-filled by the service).
type MonthlyTotal struct {
	Month int
	Total decimal.Decimal
}

// MedicineTotal is the all-time units/revenue rollup for one medicine name.
type MedicineTotal struct {
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}

// SalesActivity summarizes one medicine's sales history for the restock
// predictor: total units sold between the first and last sale.
type SalesActivity struct {
	MedicineID string
	FirstSale  time.Time
	LastSale   time.Time
	TotalQty   int
}

type SaleRepository interface {
	// Create inserts the sale and draws its invoice number from the
	// invoice_seq Postgres sequence inside the same transaction, the one
	// allocator in the system that is atomic.
	Create(ctx context.Context, s *model.Sale) error
	FindByInvoiceID(ctx context.Context, invoiceID string) (*model.Sale, error)
	List(ctx context.Context) ([]model.Sale, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error)
	Update(ctx context.Context, s *model.Sale, replaceItems bool) error
	DeleteByInvoiceID(ctx context.Context, invoiceID string) (bool, error)

	// Aggregations
	MonthlyTotals(ctx context.Context, from, to time.Time) ([]MonthlyTotal, error)
	MedicineTotals(ctx context.Context) ([]MedicineTotal, error)
	SalesActivityByMedicine(ctx context.Context) ([]SalesActivity, error)
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq int
		if err := tx.Raw("SELECT nextval('invoice_seq')").Scan(&seq).Error; err != nil {
			return err
		}
		s.InvoiceID = sequence.InvoiceID.Render(seq)
		return tx.Create(s).Error
	})
}

func (r *saleRepo) FindByInvoiceID(ctx context.Context, invoiceID string) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").Where("invoice_id = ?", invoiceID).First(&s).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Items").Order("order_date_time DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Items").
		Where("order_date_time >= ? AND order_date_time <= ?", from, to).
		Order("order_date_time DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Update(ctx context.Context, s *model.Sale, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceItems {
			if err := tx.Where("sale_id = ?", s.ID).Delete(&model.SaleItem{}).Error; err != nil {
				return err
			}
			for i := range s.Items {
				s.Items[i].SaleID = s.ID
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: replaceItems}).Save(s).Error
	})
}

func (r *saleRepo) DeleteByInvoiceID(ctx context.Context, invoiceID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).Delete(&model.Sale{})
	return res.RowsAffected > 0, res.Error
}

func (r *saleRepo) MonthlyTotals(ctx context.Context, from, to time.Time) ([]MonthlyTotal, error) {
	var rows []MonthlyTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(MONTH FROM s.order_date_time)::int AS month,
		       SUM(i.qty_sold * i.unit_price)             AS total
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.order_date_time >= ? AND s.order_date_time <= ?
		GROUP BY 1
		ORDER BY 1`, from, to).Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) MedicineTotals(ctx context.Context) ([]MedicineTotal, error) {
	var rows []MedicineTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT i.name                         AS name,
		       SUM(i.qty_sold)::int           AS quantity,
		       SUM(i.qty_sold * i.unit_price) AS revenue
		FROM sale_items i
		GROUP BY i.name
		ORDER BY quantity DESC`).Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) SalesActivityByMedicine(ctx context.Context) ([]SalesActivity, error) {
	var rows []SalesActivity
	err := r.db.WithContext(ctx).Raw(`
		SELECT i.medicine_id          AS medicine_id,
		       MIN(s.order_date_time) AS first_sale,
		       MAX(s.order_date_time) AS last_sale,
		       SUM(i.qty_sold)::int   AS total_qty
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		GROUP BY i.medicine_id`).Scan(&rows).Error
	return rows, err
}
