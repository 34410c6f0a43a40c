package handler

import (
	"net/http"

	"pharmapos/internal/service"

	"github.com/gin-gonic/gin"
)

type PredictionsHandler struct{ svc service.PredictionService }

func NewPredictionsHandler(svc service.PredictionService) *PredictionsHandler {
	return &PredictionsHandler{svc: svc}
}

// List serves the stored restock-forecast snapshot; recomputation
// happens asynchronously in the worker pool.
func (h *PredictionsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
