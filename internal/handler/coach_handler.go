package handler

import (
	"errors"
	"net/http"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/middleware"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type CoachHandler struct {
	coach *service.CoachService
}

func NewCoachHandler(coach *service.CoachService) *CoachHandler {
	return &CoachHandler{coach: coach}
}

// Chat forwards the user's message to the AI coach. The generation call is
// bounded by the client's timeout; on failure the user gets an error, not a
// hanging request.
func (h *CoachHandler) Chat(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Message string `json:"message" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := h.coach.Chat(c.Request.Context(), userID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrCoachUnavailable) {
			log.WithError(err).Warn("coach generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "coach unavailable, try again later"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
