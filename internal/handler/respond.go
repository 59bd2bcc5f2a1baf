package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/repository"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// respondError maps domain errors onto the HTTP taxonomy: business-rule
// violations go back verbatim as 400s, missing rows as 404s, everything
// else is logged and surfaced as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInsufficientFunds),
		errors.Is(err, repository.ErrGoalInsufficientFunds),
		errors.Is(err, repository.ErrAlreadyTagged),
		errors.Is(err, repository.ErrAlreadyJoined),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidTag),
		errors.Is(err, service.ErrInvalidStashType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		log.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

const maxPageSize = 100

// pageParams reads limit/offset query params. Unparsable or non-positive
// limits fall back to the default; limit is capped at maxPageSize and a
// negative offset becomes zero.
func pageParams(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
