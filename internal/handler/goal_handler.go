package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/middleware"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/models"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type GoalHandler struct {
	goalRepo *repository.GoalRepository
}

func NewGoalHandler(goalRepo *repository.GoalRepository) *GoalHandler {
	return &GoalHandler{goalRepo: goalRepo}
}

func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	goals, err := h.goalRepo.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(goals))
	for _, g := range goals {
		out = append(out, goalView(&g))
	}
	c.JSON(http.StatusOK, gin.H{"goals": out})
}

func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Name         string          `json:"name" binding:"required"`
		Emoji        string          `json:"emoji"`
		TargetAmount decimal.Decimal `json:"target_amount"`
		IsMain       bool            `json:"is_main"`
		Deadline     *time.Time      `json:"deadline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.TargetAmount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_amount must be positive"})
		return
	}
	g := &models.Goal{
		UserID:       userID,
		Name:         req.Name,
		Emoji:        req.Emoji,
		TargetAmount: req.TargetAmount.Round(2),
		Deadline:     req.Deadline,
	}
	if err := h.goalRepo.Create(g); err != nil {
		respondError(c, err)
		return
	}
	if req.IsMain {
		if err := h.goalRepo.SetMain(userID, g.ID); err != nil {
			respondError(c, err)
			return
		}
		g.IsMain = true
	}
	c.JSON(http.StatusCreated, goalView(g))
}

func (h *GoalHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	goalID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}
	g, err := h.goalRepo.GetByID(userID, uint(goalID))
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		Name         *string          `json:"name"`
		Emoji        *string          `json:"emoji"`
		TargetAmount *decimal.Decimal `json:"target_amount"`
		IsMain       *bool            `json:"is_main"`
		Deadline     *time.Time       `json:"deadline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Emoji != nil {
		g.Emoji = *req.Emoji
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target_amount must be positive"})
			return
		}
		g.TargetAmount = req.TargetAmount.Round(2)
	}
	if req.Deadline != nil {
		g.Deadline = req.Deadline
	}
	if err := h.goalRepo.Update(g); err != nil {
		respondError(c, err)
		return
	}
	if req.IsMain != nil && *req.IsMain && !g.IsMain {
		if err := h.goalRepo.SetMain(userID, g.ID); err != nil {
			respondError(c, err)
			return
		}
		g.IsMain = true
	}
	c.JSON(http.StatusOK, goalView(g))
}

func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	goalID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}
	if err := h.goalRepo.Delete(userID, uint(goalID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func goalView(g *models.Goal) gin.H {
	return gin.H{
		"id":             g.ID,
		"name":           g.Name,
		"emoji":          g.Emoji,
		"target_amount":  g.TargetAmount,
		"current_amount": g.CurrentAmount,
		"is_main":        g.IsMain,
		"deadline":       g.Deadline,
		"completed":      g.Completed(),
		"created_at":     g.CreatedAt,
	}
}
