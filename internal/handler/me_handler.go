package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/middleware"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/repository"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/service"
	"github.com/portgasdyamato/Pocket-Fund-sub000/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	userRepo  *repository.UserRepository
	goalRepo  *repository.GoalRepository
	badgeRepo *repository.BadgeRepository
	ledger    *service.LedgerService
	streaks   *service.StreakService
	cloud     cloudinary.Client
}

func NewMeHandler(
	userRepo *repository.UserRepository,
	goalRepo *repository.GoalRepository,
	badgeRepo *repository.BadgeRepository,
	ledger *service.LedgerService,
	streaks *service.StreakService,
	cloud cloudinary.Client,
) *MeHandler {
	return &MeHandler{
		userRepo:  userRepo,
		goalRepo:  goalRepo,
		badgeRepo: badgeRepo,
		ledger:    ledger,
		streaks:   streaks,
		cloud:     cloud,
	}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// GetDashboard aggregates the home screen: wallet, main goal, streaks,
// stash total and the latest activity.
func (h *MeHandler) GetDashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := gin.H{
		"wallet_balance": u.WalletBalance,
		"main_goal":      nil,
	}
	if g, err := h.goalRepo.GetMain(userID); err == nil {
		out["main_goal"] = goalView(g)
	}
	if summary, err := h.streaks.Summary(userID); err == nil {
		out["streak"] = summary
	}
	if total, err := h.ledger.StashTotal(userID); err == nil {
		out["stash_total"] = total
	}
	if recent, err := h.ledger.ListTransactions(userID, 5, 0); err == nil {
		out["recent_transactions"] = recent
	}
	if grants, err := h.badgeRepo.ListByUser(userID); err == nil {
		out["badges"] = grants
	}
	c.JSON(http.StatusOK, out)
}

// UploadAvatar stores a new profile picture via Cloudinary.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer f.Close()
	publicID := fmt.Sprintf("user_%d_%d", userID, time.Now().Unix())
	url, err := h.cloud.UploadAvatar(c.Request.Context(), f, publicID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.userRepo.UpdateAvatar(userID, url); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
