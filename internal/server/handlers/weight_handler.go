package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/aggregate"
	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/service/herd"
	"github.com/mamadbah2/herdbook/internal/service/weight"
)

// WeightHandler exposes the weight tracking endpoints.
type WeightHandler struct {
	svc    *weight.Service
	herds  *herd.Service
	logger *zap.Logger
	now    func() time.Time
}

// NewWeightHandler builds a weight handler instance. The herd service resolves
// birth date and breed for the evolution series.
func NewWeightHandler(svc *weight.Service, herds *herd.Service, logger *zap.Logger) *WeightHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeightHandler{svc: svc, herds: herds, logger: logger, now: time.Now}
}

// weightRow augments a stored record with the breed's adult-range label shown
// in the history table.
type weightRow struct {
	models.WeightRecord
	AdultStatus aggregate.AdultWeightStatus `json:"adultStatus"`
}

// List returns the filtered weigh-in history and its statistics.
func (h *WeightHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filter := aggregate.WeightFilter{
		Search:    c.Query("search"),
		CattleID:  c.Query("cattleId"),
		DateRange: aggregate.WeightDateRange(c.Query("range")),
		SortBy:    aggregate.WeightSort(c.Query("sort")),
	}

	filtered := aggregate.FilterWeights(records, filter, h.now())
	rows := make([]weightRow, 0, len(filtered))
	for _, rec := range filtered {
		rows = append(rows, weightRow{
			WeightRecord: rec,
			AdultStatus:  aggregate.ClassifyAdultWeight(rec.WeightKg, rec.CattleBreed),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"records": rows,
		"stats":   aggregate.WeightStatistics(filtered),
	})
}

// Evolution returns one animal's growth series against its breed's expected
// band, plus the headline summary.
func (h *WeightHandler) Evolution(c *gin.Context) {
	cattleID := c.Param("cattleId")

	cattle, err := h.herds.Get(c.Request.Context(), cattleID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	records, err := h.svc.ListByCattle(c.Request.Context(), cattleID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	points := aggregate.WeightEvolution(records, cattle.BirthDate, cattle.Breed)
	c.JSON(http.StatusOK, gin.H{
		"cattle":  cattle,
		"points":  points,
		"summary": aggregate.SummarizeEvolution(points),
	})
}

// Create stores a weigh-in.
func (h *WeightHandler) Create(c *gin.Context) {
	var rec models.WeightRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.svc.Add(c.Request.Context(), rec)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update replaces a weigh-in.
func (h *WeightHandler) Update(c *gin.Context) {
	var rec models.WeightRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.Update(c.Request.Context(), c.Param("id"), rec); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

// Delete removes a weigh-in.
func (h *WeightHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
