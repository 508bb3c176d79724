package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/repository/mongodb"
	"github.com/mamadbah2/herdbook/internal/service/herd"
	"github.com/mamadbah2/herdbook/internal/service/medical"
	"github.com/mamadbah2/herdbook/internal/service/milk"
	"github.com/mamadbah2/herdbook/internal/service/weight"
)

var validationErrors = []error{
	herd.ErrValidation,
	herd.ErrDueDateForMale,
	milk.ErrInvalidLiters,
	milk.ErrInvalidDate,
	weight.ErrInvalidWeight,
	weight.ErrInvalidDate,
	medical.ErrValidation,
}

// respondError maps service and store failures onto HTTP statuses: permission
// problems are 403 with a hint, missing documents 404, validation 400 and
// everything else a 502 without internal detail.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, mongodb.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "the record store rejected the operation; check the database user's access rules",
		})
	case errors.Is(err, mongodb.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case isValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if logger != nil {
			logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "record store unavailable"})
	}
}

func isValidation(err error) bool {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
