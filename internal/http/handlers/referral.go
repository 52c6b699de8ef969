package handlers

import (
	"net/http"
	"strconv"

	"wallet_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListReferrals returns the user's referrals with aggregate stats.
func (h *Handler) ListReferrals(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	refs, stats, err := h.Referrals.ListByReferrer(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if refs == nil {
		refs = []*domain.Referral{}
	}

	c.JSON(http.StatusOK, gin.H{
		"referrals": refs,
		"stats":     stats,
	})
}

type createReferralRequest struct {
	ReferrerID   int64  `json:"referrer_id" binding:"required"`
	ReferralCode string `json:"referral_code" binding:"required"`
}

// CreateReferral records a referral for the authenticated user. Called by
// the registration flow after resolving the referral code to its owner; the
// referee is always the caller, so a user cannot plant referrals for others.
func (h *Handler) CreateReferral(c *gin.Context) {
	refereeID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "referrer_id and referral_code are required"})
		return
	}

	ref, err := h.Referrals.Create(c.Request.Context(), req.ReferrerID, refereeID, req.ReferralCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"referral": ref})
}

// CompleteReferral transitions a referral to COMPLETED and credits the
// reward. Only the referral's referrer may complete it.
func (h *Handler) CompleteReferral(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	referralID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid referral id"})
		return
	}

	t, err := h.Referrals.Complete(c.Request.Context(), referralID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "referral completed and reward credited",
		"transaction": t,
	})
}
