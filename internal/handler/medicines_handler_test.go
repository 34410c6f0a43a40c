package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pharmapos/internal/dto"
	"pharmapos/internal/middleware"
	"pharmapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMedicineService lets each test script the service response and
// assert only the HTTP mapping.
type stubMedicineService struct {
	createResp *dto.MedicineResponse
	createErr  error
	getResp    *dto.MedicineResponse
	getErr     error
	searchResp *dto.MedicineLookupResponse
	searchErr  error
	deleteErr  error
}

func (s *stubMedicineService) Create(context.Context, dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	return s.createResp, s.createErr
}
func (s *stubMedicineService) NextIDs(context.Context) (*dto.NextIDsResponse, error) {
	return &dto.NextIDsResponse{MedicineID: "MED001", BatchNumber: "B000001"}, nil
}
func (s *stubMedicineService) GetByID(context.Context, string) (*dto.MedicineResponse, error) {
	return s.getResp, s.getErr
}
func (s *stubMedicineService) List(context.Context) ([]dto.MedicineResponse, error) {
	return nil, nil
}
func (s *stubMedicineService) Update(context.Context, string, dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	return nil, nil
}
func (s *stubMedicineService) Delete(context.Context, string) error { return s.deleteErr }
func (s *stubMedicineService) SearchByName(context.Context, string) (*dto.MedicineLookupResponse, error) {
	return s.searchResp, s.searchErr
}
func (s *stubMedicineService) ListNames(context.Context) ([]dto.MedicineNameItem, error) {
	return nil, nil
}
func (s *stubMedicineService) PurchaseHistory(context.Context) ([]dto.PurchaseRecordResponse, error) {
	return nil, nil
}

func newMedicinesRouter(svc service.MedicineService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMedicinesHandler(svc)
	r := gin.New()
	r.POST("/api/medicines", h.Create)
	r.GET("/api/medicines/next-id", h.NextIDs)
	r.GET("/api/medicines/search", h.Search)
	r.GET("/api/medicines/:id", h.GetByID)
	r.DELETE("/api/medicines/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateMedicineReturns201(t *testing.T) {
	svc := &stubMedicineService{createResp: &dto.MedicineResponse{MedicineID: "MED001", Name: "Paracetamol"}}
	r := newMedicinesRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/medicines", dto.CreateMedicineRequest{
		Name: "Paracetamol", ExpiryDate: "2026-06-01", Price: decimal.NewFromInt(4),
		Quantity: 10, RestockedDate: "2025-06-01", SupplierID: "SUP001",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.MedicineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MED001", resp.MedicineID)
}

func TestCreateMedicineRejectsMissingFields(t *testing.T) {
	r := newMedicinesRouter(&stubMedicineService{})

	w := doJSON(t, r, http.MethodPost, "/api/medicines", map[string]string{"name": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["field"])
}

func TestCreateMedicineMapsValidationErrorTo400(t *testing.T) {
	svc := &stubMedicineService{createErr: &service.ValidationError{
		Field: "expiryDate", Message: "expiry date must be in the future",
	}}
	r := newMedicinesRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/medicines", dto.CreateMedicineRequest{
		Name: "Paracetamol", ExpiryDate: "2020-01-01", Price: decimal.NewFromInt(4),
		Quantity: 10, RestockedDate: "2019-01-01", SupplierID: "SUP001",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "expiryDate", body["field"])
}

func TestCreateMedicineMapsRetryableConflictTo409(t *testing.T) {
	svc := &stubMedicineService{createErr: &service.ConflictError{
		Field: "medicineId", Message: "duplicate medicine id, please retry", Retryable: true,
	}}
	r := newMedicinesRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/medicines", dto.CreateMedicineRequest{
		Name: "Paracetamol", ExpiryDate: "2026-06-01", Price: decimal.NewFromInt(4),
		Quantity: 10, RestockedDate: "2025-06-01", SupplierID: "SUP001",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUnclassifiedErrorWritesSingle500Envelope(t *testing.T) {
	svc := &stubMedicineService{createErr: errors.New("connection reset by peer")}
	gin.SetMode(gin.TestMode)
	h := NewMedicinesHandler(svc)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/api/medicines", h.Create)

	w := doJSON(t, r, http.MethodPost, "/api/medicines", dto.CreateMedicineRequest{
		Name: "Paracetamol", ExpiryDate: "2026-06-01", Price: decimal.NewFromInt(4),
		Quantity: 10, RestockedDate: "2025-06-01", SupplierID: "SUP001",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The body must be exactly one envelope; a trailing second object
	// would make Unmarshal fail and would leak through clients as garbage.
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["message"])
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestGetMedicineMapsNotFoundTo404(t *testing.T) {
	r := newMedicinesRouter(&stubMedicineService{getErr: service.ErrNotFound})

	w := doJSON(t, r, http.MethodGet, "/api/medicines/MED404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchRequiresNameParam(t *testing.T) {
	r := newMedicinesRouter(&stubMedicineService{})

	w := doJSON(t, r, http.MethodGet, "/api/medicines/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchReturnsLookup(t *testing.T) {
	svc := &stubMedicineService{searchResp: &dto.MedicineLookupResponse{
		MedicineID: "MED001", Name: "Paracetamol", Price: decimal.NewFromFloat(4.50),
	}}
	r := newMedicinesRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/medicines/search?name=paracetamol", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.MedicineLookupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MED001", resp.MedicineID)
}

func TestDeleteMedicineReturns200(t *testing.T) {
	r := newMedicinesRouter(&stubMedicineService{})

	w := doJSON(t, r, http.MethodDelete, "/api/medicines/MED001", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
