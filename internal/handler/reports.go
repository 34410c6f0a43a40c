package handler

import (
	"net/http"
	"strconv"

	"pharmapos/internal/apierror"
	"pharmapos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) AnnualSales(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewField("year must be a number", "year"))
		return
	}
	resp, err := h.svc.AnnualSales(c.Request.Context(), year)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) MedicineDistribution(c *gin.Context) {
	resp, err := h.svc.MedicineDistribution(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
