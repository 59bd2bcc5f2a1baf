package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/middleware"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	ledger *service.LedgerService
}

func NewTransactionHandler(ledger *service.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// Create logs an expense and debits the wallet.
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category" binding:"required"`
		Description string          `json:"description"`
		Date        *time.Time      `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	t, err := h.ledger.CreateExpense(userID, req.Amount, req.Category, req.Description, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pageParams(c, 20)
	list, err := h.ledger.ListTransactions(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": list})
}

// Tag applies the one-time Need/Want/Ick tag and bumps the fight streak.
func (h *TransactionHandler) Tag(c *gin.Context) {
	userID := middleware.GetUserID(c)
	txID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}
	var req struct {
		Tag string `json:"tag" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ledger.TagTransaction(userID, uint(txID), req.Tag); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
