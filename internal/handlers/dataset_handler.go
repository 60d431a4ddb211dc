package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodafford/internal/models"
	"foodafford/internal/services"
)

// DatasetHandler serves the snapshot overview and the keyed reload.
type DatasetHandler struct {
	datasetService services.DatasetServicer
}

// NewDatasetHandler creates a new DatasetHandler.
func NewDatasetHandler(datasetService services.DatasetServicer) *DatasetHandler {
	return &DatasetHandler{datasetService: datasetService}
}

// ReloadResponse wraps the load that produced the new snapshot.
type ReloadResponse struct {
	Load *models.DatasetLoad `json:"load"`
}

// GetOverview returns row counts, the month range and the latest metrics.
// @Summary     Dataset overview
// @Description Summarize the loaded snapshot: counts, month range, baseline and latest affordability
// @Tags        dataset
// @Produce     json
// @Success     200 {object} services.Overview
// @Failure     422 {object} ErrorResponse "Last load failed a data-quality check"
// @Failure     503 {object} ErrorResponse "No dataset loaded"
// @Router      /overview [get]
func (h *DatasetHandler) GetOverview(c *gin.Context) {
	ov, err := h.datasetService.Overview(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

// Reload re-reads the input files and replaces the snapshot.
// @Summary     Reload dataset
// @Description Read the configured flat files, recompute every derived table and replace the snapshot
// @Tags        pipeline
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} ReloadResponse
// @Failure     401 {object} ErrorResponse "Invalid or missing API key"
// @Failure     422 {object} ErrorResponse "Input failed a data-quality check"
// @Failure     503 {object} ErrorResponse "Pipeline not configured"
// @Router      /pipeline/reload [post]
func (h *DatasetHandler) Reload(c *gin.Context) {
	load, err := h.datasetService.Reload(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ReloadResponse{Load: load})
}
