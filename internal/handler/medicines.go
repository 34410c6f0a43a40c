package handler

import (
	"net/http"

	"pharmapos/internal/apierror"
	"pharmapos/internal/dto"
	"pharmapos/internal/service"

	"github.com/gin-gonic/gin"
)

type MedicinesHandler struct{ svc service.MedicineService }

func NewMedicinesHandler(svc service.MedicineService) *MedicinesHandler {
	return &MedicinesHandler{svc: svc}
}

func (h *MedicinesHandler) Create(c *gin.Context) {
	var req dto.CreateMedicineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// NextIDs previews the identifiers the next creation would receive.
// Purely informational: concurrent creations can invalidate the preview.
func (h *MedicinesHandler) NextIDs(c *gin.Context) {
	resp, err := h.svc.NextIDs(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MedicinesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MedicinesHandler) GetByID(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MedicinesHandler) Update(c *gin.Context) {
	var req dto.UpdateMedicineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MedicinesHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "medicine deleted successfully"})
}

// Search resolves one medicine by exact (case-insensitive) name for the
// billing-form autofill.
func (h *MedicinesHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, apierror.NewField("query parameter 'name' is required", "name"))
		return
	}
	resp, err := h.svc.SearchByName(c.Request.Context(), name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MedicinesHandler) ListNames(c *gin.Context) {
	resp, err := h.svc.ListNames(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MedicinesHandler) PurchaseHistory(c *gin.Context) {
	resp, err := h.svc.PurchaseHistory(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
