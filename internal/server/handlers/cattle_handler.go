package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/aggregate"
	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/service/herd"
)

// CattleHandler exposes the herd endpoints.
type CattleHandler struct {
	svc    *herd.Service
	logger *zap.Logger
	now    func() time.Time
}

// NewCattleHandler builds a cattle handler instance.
func NewCattleHandler(svc *herd.Service, logger *zap.Logger) *CattleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CattleHandler{svc: svc, logger: logger, now: time.Now}
}

// cattleRow augments an animal with the derived display fields of the herd
// list: age, its rendered label and, for pregnant animals, the days left
// until the expected birth.
type cattleRow struct {
	models.Cattle
	AgeMonths      int    `json:"ageMonths"`
	AgeLabel       string `json:"ageLabel"`
	DaysUntilBirth *int   `json:"daysUntilBirth,omitempty"`
}

// List returns the filtered herd plus the distinct breed values for the
// filter control.
func (h *CattleHandler) List(c *gin.Context) {
	cattle, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filter := aggregate.CattleFilter{
		Search:       c.Query("search"),
		Breed:        c.Query("breed"),
		HealthStatus: c.Query("status"),
		SortBy:       aggregate.CattleSort(c.Query("sort")),
	}

	now := h.now()
	filtered := aggregate.FilterCattle(cattle, filter)
	rows := make([]cattleRow, 0, len(filtered))
	for _, animal := range filtered {
		row := cattleRow{
			Cattle:    animal,
			AgeMonths: aggregate.AgeInMonths(animal.BirthDate, now),
			AgeLabel:  aggregate.AgeLabel(animal.BirthDate, now),
		}
		if animal.IsPregnant() {
			if days, err := aggregate.DaysUntilBirth(animal.PregnancyDueDate, now); err == nil {
				row.DaysUntilBirth = &days
			}
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"cattle": rows,
		"breeds": aggregate.Breeds(cattle),
		"total":  len(cattle),
	})
}

// Summary returns the herd dashboard block: headline figures plus the births
// and weight checks worth acting on.
func (h *CattleHandler) Summary(c *gin.Context) {
	cattle, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	now := h.now()
	c.JSON(http.StatusOK, gin.H{
		"summary":            aggregate.Summarize(cattle),
		"upcomingBirths":     aggregate.UpcomingBirths(cattle, now),
		"needingWeightCheck": aggregate.NeedingWeightCheck(cattle, now),
	})
}

// Create registers a new animal.
func (h *CattleHandler) Create(c *gin.Context) {
	var cattle models.Cattle
	if err := c.ShouldBindJSON(&cattle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.svc.Register(c.Request.Context(), cattle)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update replaces an animal's record.
func (h *CattleHandler) Update(c *gin.Context) {
	var cattle models.Cattle
	if err := c.ShouldBindJSON(&cattle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.Update(c.Request.Context(), c.Param("id"), cattle); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

// Delete removes an animal. Dependent records stay behind until the orphan
// cleanup runs.
func (h *CattleHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CleanupOrphans runs the maintenance pass that removes records whose animal
// no longer exists.
func (h *CattleHandler) CleanupOrphans(c *gin.Context) {
	report, err := h.svc.CleanupOrphans(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
