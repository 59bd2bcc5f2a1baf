package handler

import (
	"net/http"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/middleware"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/repository"

	"github.com/gin-gonic/gin"
)

type BadgeHandler struct {
	badgeRepo *repository.BadgeRepository
}

func NewBadgeHandler(badgeRepo *repository.BadgeRepository) *BadgeHandler {
	return &BadgeHandler{badgeRepo: badgeRepo}
}

func (h *BadgeHandler) ListAll(c *gin.Context) {
	badges, err := h.badgeRepo.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

func (h *BadgeHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	grants, err := h.badgeRepo.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": grants})
}
