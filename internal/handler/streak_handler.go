package handler

import (
	"net/http"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/middleware"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type StreakHandler struct {
	streaks *service.StreakService
}

func NewStreakHandler(streaks *service.StreakService) *StreakHandler {
	return &StreakHandler{streaks: streaks}
}

// Get returns the user's counters, zero when no action was ever recorded.
func (h *StreakHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	summary, err := h.streaks.Summary(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
