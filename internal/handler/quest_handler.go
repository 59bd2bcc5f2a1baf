package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/middleware"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type QuestHandler struct {
	quests *service.QuestService
}

func NewQuestHandler(quests *service.QuestService) *QuestHandler {
	return &QuestHandler{quests: quests}
}

// List returns every quest with the user's progress for the current week.
func (h *QuestHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	overview, err := h.quests.Overview(userID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quests": overview})
}

func (h *QuestHandler) Join(c *gin.Context) {
	userID := middleware.GetUserID(c)
	questID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest id"})
		return
	}
	if err := h.quests.Join(userID, uint(questID), time.Now()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *QuestHandler) Complete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	questID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest id"})
		return
	}
	if err := h.quests.Complete(userID, uint(questID), time.Now()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
