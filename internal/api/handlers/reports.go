package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/deck-meta/backend/internal/models"
	"github.com/codyseavey/deck-meta/backend/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
	pools   *services.DeckPoolService
}

func NewReportHandler(reports *services.ReportService, pools *services.DeckPoolService) *ReportHandler {
	return &ReportHandler{reports: reports, pools: pools}
}

// ListArchetypes returns the loaded deck pools with their sizes.
func (h *ReportHandler) ListArchetypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"archetypes": h.pools.Archetypes()})
}

// GetBaselineReport returns the unfiltered usage report for one archetype.
func (h *ReportHandler) GetBaselineReport(c *gin.Context) {
	archetype := c.Param("archetype")

	report, err := h.reports.Baseline(archetype)
	if err != nil {
		h.reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ApplyFilters returns the usage report for one archetype narrowed by the
// posted filter set. A report with deckTotal 0 is a valid response, not an
// error. When a newer filter request supersedes this one mid-computation the
// result is discarded and 409 returned; clients just keep the newer response.
func (h *ReportHandler) ApplyFilters(c *gin.Context) {
	archetype := c.Param("archetype")

	var req models.FilterReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MaxPlacement < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "maxPlacement must not be negative"})
		return
	}
	if err := validateFilters(req.Include); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filters := models.FilterSet{Include: req.Include, Exclude: req.Exclude}
	report, applied, err := h.reports.Apply(archetype, filters, req.MaxPlacement)
	if err != nil {
		h.reportError(c, err)
		return
	}
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer filter request"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) reportError(c *gin.Context, err error) {
	var unknown *services.ErrUnknownArchetype
	if errors.As(err, &unknown) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func validateFilters(include []models.FilterDescriptor) error {
	for _, f := range include {
		switch f.Operator {
		case "", models.OperatorAny, models.OperatorEqual, models.OperatorLess,
			models.OperatorGreater, models.OperatorGreaterEqual, models.OperatorLessEqual:
		default:
			return errors.New("operator must be one of =, <, >, >=, <=, any")
		}
	}
	return nil
}
