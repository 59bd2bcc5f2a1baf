package handler

import (
	"net/http"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/middleware"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type StashHandler struct {
	ledger *service.LedgerService
}

func NewStashHandler(ledger *service.LedgerService) *StashHandler {
	return &StashHandler{ledger: ledger}
}

// Create records a stash or withdraw entry. The response carries the ledger
// entry plus goalCompleted, true only when this stash pushed the attached
// goal across its target.
func (h *StashHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Amount decimal.Decimal `json:"amount"`
		Type   string          `json:"type" binding:"required"`
		GoalID *uint           `json:"goal_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.ledger.CreateStash(userID, req.Amount, req.Type, req.GoalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":            res.Entry.ID,
		"reference":     res.Entry.Reference,
		"user_id":       res.Entry.UserID,
		"goal_id":       res.Entry.GoalID,
		"amount":        res.Entry.Amount,
		"type":          res.Entry.Type,
		"created_at":    res.Entry.CreatedAt,
		"goalCompleted": res.GoalCompleted,
	})
}

// Total returns the net stashed amount (stashes minus withdraws).
func (h *StashHandler) Total(c *gin.Context) {
	userID := middleware.GetUserID(c)
	total, err := h.ledger.StashTotal(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}
