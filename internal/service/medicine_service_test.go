package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pharmapos/internal/dto"
	"pharmapos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testClock = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newMedicineServiceForTest() (*medicineService, *stubMedicineRepo, *stubPurchaseRepo) {
	repo := &stubMedicineRepo{}
	ledger := &stubPurchaseRepo{}
	svc := NewMedicineService(repo, ledger, nil).(*medicineService)
	svc.now = func() time.Time { return testClock }
	return svc, repo, ledger
}

func validCreateMedicine() dto.CreateMedicineRequest {
	return dto.CreateMedicineRequest{
		Name:          "Paracetamol",
		ExpiryDate:    "2026-06-01",
		Price:         decimal.NewFromFloat(4.50),
		Quantity:      100,
		RestockedDate: "2025-06-01",
		SupplierID:    "SUP001",
	}
}

func TestCreateMedicineAllocatesSequentialIDs(t *testing.T) {
	svc, _, _ := newMedicineServiceForTest()
	ctx := context.Background()

	first, err := svc.Create(ctx, validCreateMedicine())
	require.NoError(t, err)
	assert.Equal(t, "MED001", first.MedicineID)
	assert.Equal(t, "B000001", first.BatchNumber)

	req := validCreateMedicine()
	req.Name = "Ibuprofen"
	second, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "MED002", second.MedicineID)
	assert.Equal(t, "B000002", second.BatchNumber)
}

func TestCreateMedicineWritesLedgerEntry(t *testing.T) {
	svc, _, ledger := newMedicineServiceForTest()

	_, err := svc.Create(context.Background(), validCreateMedicine())
	require.NoError(t, err)

	require.Len(t, ledger.records, 1)
	rec := ledger.records[0]
	assert.Equal(t, "MED001", rec.MedicineID)
	assert.Equal(t, model.ActionNew, rec.ActionType)
	assert.Equal(t, 100, rec.Quantity)
}

func TestCreateMedicineRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	svc, _, _ := newMedicineServiceForTest()
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateMedicine())
	require.NoError(t, err)

	req := validCreateMedicine()
	req.Name = "PARACETAMOL"
	_, err = svc.Create(ctx, req)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "name", cerr.Field)
	assert.False(t, cerr.Retryable)
}

func TestCreateMedicineDateValidation(t *testing.T) {
	svc, _, _ := newMedicineServiceForTest()
	ctx := context.Background()

	cases := []struct {
		name      string
		restocked string
		expiry    string
		field     string
	}{
		{"restocked in the future", "2025-07-01", "2026-06-01", "restockedDate"},
		{"expiry not in the future", "2025-06-01", "2025-06-15", "expiryDate"},
		{"expiry in the past", "2024-01-01", "2024-06-01", "expiryDate"},
		{"restocked not before expiry", "2025-06-10", "2025-06-10", "expiryDate"},
		{"malformed restocked", "june 1st", "2026-06-01", "restockedDate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateMedicine()
			req.RestockedDate = tc.restocked
			req.ExpiryDate = tc.expiry
			_, err := svc.Create(ctx, req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCreateMedicineRestockedTodayAccepted(t *testing.T) {
	svc, _, _ := newMedicineServiceForTest()

	req := validCreateMedicine()
	req.RestockedDate = "2025-06-15" // same day as the clock
	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateMedicineRejectsNonPositivePrice(t *testing.T) {
	svc, _, _ := newMedicineServiceForTest()

	req := validCreateMedicine()
	req.Price = decimal.Zero
	_, err := svc.Create(context.Background(), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price", verr.Field)
}

// The read-last allocator can race a concurrent creation; the unique
// index turns that into a retryable conflict.
func TestCreateMedicineAllocatorRaceIsRetryable(t *testing.T) {
	svc, repo, _ := newMedicineServiceForTest()
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateMedicine())
	require.NoError(t, err)

	// Simulate a lost race: another creation took MED002, but the
	// allocator still reads MED001 as the newest record.
	repo.medicines = append(repo.medicines, &model.Medicine{
		MedicineID: "MED002", BatchNumber: "B000009", Name: "Other",
	})
	repo.medicines[0], repo.medicines[1] = repo.medicines[1], repo.medicines[0]

	req := validCreateMedicine()
	req.Name = "Aspirin"
	_, err = svc.Create(ctx, req)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.True(t, cerr.Retryable)
	assert.Equal(t, "medicineId", cerr.Field)
}

func TestNextIDsPreviewDoesNotConsume(t *testing.T) {
	svc, _, _ := newMedicineServiceForTest()
	ctx := context.Background()

	ids, err := svc.NextIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "MED001", ids.MedicineID)
	assert.Equal(t, "B000001", ids.BatchNumber)

	// Preview twice — still the same ids until something is created.
	ids2, err := svc.NextIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids, ids2)
}

func TestUpdateMedicineKeepsImmutableIDsAndLedgersFirst(t *testing.T) {
	svc, _, ledger := newMedicineServiceForTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateMedicine())
	require.NoError(t, err)

	resp, err := svc.Update(ctx, created.MedicineID, dto.UpdateMedicineRequest{
		MedicineID:    "MED999", // must be ignored
		BatchNumber:   "B999999",
		Name:          "Paracetamol Forte",
		ExpiryDate:    "2026-12-01",
		Price:         decimal.NewFromFloat(5.25),
		Quantity:      80,
		RestockedDate: "2025-06-10",
		SupplierID:    "SUP002",
	})
	require.NoError(t, err)
	assert.Equal(t, "MED001", resp.MedicineID)
	assert.Equal(t, "B000001", resp.BatchNumber)
	assert.Equal(t, "Paracetamol Forte", resp.Name)

	require.Len(t, ledger.records, 2)
	assert.Equal(t, model.ActionUpdate, ledger.records[1].ActionType)
	assert.Equal(t, 80, ledger.records[1].Quantity)
}

func TestUpdateMedicineNotFound(t *testing.T) {
	svc, _, _ := newMedicineServiceForTest()

	_, err := svc.Update(context.Background(), "MED404", dto.UpdateMedicineRequest{
		Name: "Ghost", ExpiryDate: "2026-06-01", Price: decimal.NewFromInt(1),
		RestockedDate: "2025-06-01", SupplierID: "SUP001",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMedicineWritesNoLedgerEntry(t *testing.T) {
	svc, repo, ledger := newMedicineServiceForTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateMedicine())
	require.NoError(t, err)
	require.Len(t, ledger.records, 1)

	require.NoError(t, svc.Delete(ctx, created.MedicineID))
	assert.Empty(t, repo.medicines)
	// Deletion leaves the ledger untouched.
	assert.Len(t, ledger.records, 1)

	assert.ErrorIs(t, svc.Delete(ctx, created.MedicineID), ErrNotFound)
}

func TestSearchByNameIsCaseInsensitive(t *testing.T) {
	svc, _, _ := newMedicineServiceForTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateMedicine())
	require.NoError(t, err)

	found, err := svc.SearchByName(ctx, "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, created.MedicineID, found.MedicineID)
	assert.True(t, decimal.NewFromFloat(4.50).Equal(found.Price))

	_, err = svc.SearchByName(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SearchByName(ctx, "   ")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPurchaseHistoryNewestFirst(t *testing.T) {
	svc, _, _ := newMedicineServiceForTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateMedicine())
	require.NoError(t, err)
	_, err = svc.Update(ctx, created.MedicineID, dto.UpdateMedicineRequest{
		Name: "Paracetamol", ExpiryDate: "2026-06-01", Price: decimal.NewFromInt(5),
		Quantity: 90, RestockedDate: "2025-06-05", SupplierID: "SUP001",
	})
	require.NoError(t, err)

	history, err := svc.PurchaseHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.ActionUpdate, history[0].ActionType)
	assert.Equal(t, model.ActionNew, history[1].ActionType)
}

func TestGetMedicineNotFoundMapsCleanly(t *testing.T) {
	svc, _, _ := newMedicineServiceForTest()

	_, err := svc.GetByID(context.Background(), "MED404")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, errors.Is(err, gorm.ErrRecordNotFound))
}
