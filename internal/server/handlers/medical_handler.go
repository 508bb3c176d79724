package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/aggregate"
	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/service/medical"
)

// MedicalHandler exposes the medical observation endpoints.
type MedicalHandler struct {
	svc    *medical.Service
	logger *zap.Logger
	now    func() time.Time
}

// NewMedicalHandler builds a medical handler instance.
func NewMedicalHandler(svc *medical.Service, logger *zap.Logger) *MedicalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MedicalHandler{svc: svc, logger: logger, now: time.Now}
}

// List returns the filtered observations. The stats block always reduces the
// full collection: narrowing a filter never changes the displayed totals.
func (h *MedicalHandler) List(c *gin.Context) {
	observations, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filter := aggregate.MedicalFilter{
		Search:   c.Query("search"),
		CattleID: c.Query("cattleId"),
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		Severity: c.Query("severity"),
	}

	c.JSON(http.StatusOK, gin.H{
		"observations": aggregate.FilterObservations(observations, filter),
		"stats":        aggregate.MedicalStatistics(observations, h.now()),
	})
}

// Create stores an observation.
func (h *MedicalHandler) Create(c *gin.Context) {
	var obs models.MedicalObservation
	if err := c.ShouldBindJSON(&obs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.svc.Add(c.Request.Context(), obs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update replaces an observation.
func (h *MedicalHandler) Update(c *gin.Context) {
	var obs models.MedicalObservation
	if err := c.ShouldBindJSON(&obs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.Update(c.Request.Context(), c.Param("id"), obs); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

// Delete removes an observation.
func (h *MedicalHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
