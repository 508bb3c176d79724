package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/aggregate"
	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/service/milk"
)

const (
	defaultSeriesDays = 7
	maxSeriesDays     = 90
)

// MilkHandler exposes the milk production endpoints.
type MilkHandler struct {
	svc    *milk.Service
	logger *zap.Logger
	now    func() time.Time
}

// NewMilkHandler builds a milk handler instance.
func NewMilkHandler(svc *milk.Service, logger *zap.Logger) *MilkHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MilkHandler{svc: svc, logger: logger, now: time.Now}
}

// List returns the filtered production history and its statistics. The stats
// reduce the filtered sequence, so the trend follows the active sort.
func (h *MilkHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filter := aggregate.MilkFilter{
		Search:    c.Query("search"),
		CattleID:  c.Query("cattleId"),
		DateRange: aggregate.MilkDateRange(c.Query("range")),
		SortBy:    aggregate.MilkSort(c.Query("sort")),
	}

	filtered := aggregate.FilterMilk(records, filter, h.now())
	c.JSON(http.StatusOK, gin.H{
		"records": filtered,
		"stats":   aggregate.MilkStatistics(filtered),
	})
}

// Daily returns the per-day chart series over the trailing window: herd-wide
// by default, single-animal when cattleId is given.
func (h *MilkHandler) Daily(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	days := defaultSeriesDays
	if v, err := strconv.Atoi(c.Query("days")); err == nil && v > 0 && v <= maxSeriesDays {
		days = v
	}

	now := h.now()
	cattleID := c.Query("cattleId")

	var series []aggregate.DailyMilkPoint
	if cattleID == "" || cattleID == aggregate.FilterAll {
		series = aggregate.DailyHerdSeries(records, days, now)
	} else {
		series = aggregate.DailyCattleSeries(records, cattleID, cattleAverage(records, cattleID), days, now)
	}

	c.JSON(http.StatusOK, gin.H{
		"series": series,
		"trend":  aggregate.SeriesTrend(series),
	})
}

// cattleAverage is the animal's historical mean daily total, used as the
// reference line of the single-animal chart.
func cattleAverage(records []models.MilkRecord, cattleID string) float64 {
	var sum float64
	var count int
	for _, rec := range records {
		if rec.CattleID == cattleID {
			sum += rec.TotalLiters
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Create stores a production entry, merging into the existing record when one
// exists for the same animal and date.
func (h *MilkHandler) Create(c *gin.Context) {
	var entry models.MilkRecord
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.Add(c.Request.Context(), entry)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	status := http.StatusCreated
	if result.Merged {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// Update replaces a production record.
func (h *MilkHandler) Update(c *gin.Context) {
	var rec models.MilkRecord
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

// Delete removes a production record.
func (h *MilkHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
