package handlers

import (
	"net/http"
	"strconv"

	"wallet_backend/internal/domain"
	"wallet_backend/internal/repository"
	"wallet_backend/internal/service"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

// GetWallet returns the authenticated user's wallet, creating it on first
// access.
func (h *Handler) GetWallet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	w, err := h.Wallets.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallet": w})
}

// GetTransactions returns a page of the user's ledger, newest first.
// Supports optional type and source filters.
func (h *Handler) GetTransactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	q, err := parseTransactionQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txs, total, err := h.TxRepo.Query(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, domain.StorageError("query transactions", err))
		return
	}
	if txs == nil {
		txs = []*domain.Transaction{}
	}

	pages := total / int64(q.Limit)
	if total%int64(q.Limit) != 0 {
		pages++
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": txs,
		"pagination": gin.H{
			"page":  q.Page,
			"limit": q.Limit,
			"total": total,
			"pages": pages,
		},
	})
}

// GetTransaction returns one ledger entry owned by the user.
func (h *Handler) GetTransaction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	t, err := h.TxRepo.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, domain.StorageError("get transaction", err))
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": t})
}

type payRequest struct {
	Amount    int64  `json:"amount"`
	OrderID   string `json:"order_id"`
	UseWallet *bool  `json:"use_wallet" binding:"required"`
}

// Pay executes a wallet-funded payment for an order.
func (h *Handler) Pay(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount, order_id and use_wallet are required"})
		return
	}

	t, err := h.Payments.Pay(c.Request.Context(), userID, req.Amount, req.OrderID, *req.UseWallet)
	if err != nil {
		respondError(c, err)
		return
	}

	if t == nil {
		c.JSON(http.StatusOK, gin.H{"message": "payment to be processed by other means"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "payment processed successfully",
		"transaction": t,
	})
}

// GetSettings returns the wallet policy settings.
func (h *Handler) GetSettings(c *gin.Context) {
	s, err := h.Settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": s})
}

// UpdateSettings applies a partial administrative update to the policy
// settings. Admin only.
func (h *Handler) UpdateSettings(c *gin.Context) {
	adminID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var upd domain.SettingsUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
		return
	}

	s, err := h.Settings.Update(c.Request.Context(), upd)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Audit.LogSettingsUpdate(c.Request.Context(), adminID, upd)
	c.JSON(http.StatusOK, gin.H{
		"message":  "settings updated",
		"settings": s,
	})
}

type adminCreditRequest struct {
	UserID      int64  `json:"user_id" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// AdminCredit manually credits a user's wallet. Admin only.
func (h *Handler) AdminCredit(c *gin.Context) {
	adminID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req adminCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and amount are required"})
		return
	}

	desc := req.Description
	if desc == "" {
		desc = "Administrative credit"
	}

	w, t, err := h.Wallets.Credit(c.Request.Context(), req.UserID, req.Amount, service.TxContext{
		Source:      domain.TxSourceAdminCredit,
		Description: desc,
		Metadata:    map[string]interface{}{"admin_id": adminID},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.Audit.LogAdminCredit(c.Request.Context(), adminID, req.UserID, req.Amount, desc)
	c.JSON(http.StatusOK, gin.H{
		"wallet":      w,
		"transaction": t,
	})
}

// parseTransactionQuery validates pagination and filter query params.
func parseTransactionQuery(c *gin.Context) (repository.TransactionQuery, error) {
	q := repository.TransactionQuery{Page: 1, Limit: 10}

	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return q, &domain.ValidationError{Field: "page", Reason: "must be a positive integer"}
		}
		q.Page = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageSize {
			return q, &domain.ValidationError{Field: "limit", Reason: "must be between 1 and 100"}
		}
		q.Limit = n
	}
	if v := c.Query("type"); v != "" {
		if !domain.ValidTransactionType(v) {
			return q, &domain.ValidationError{Field: "type", Reason: "must be CREDIT or DEBIT"}
		}
		q.Type = v
	}
	if v := c.Query("source"); v != "" {
		if !domain.ValidTransactionSource(v) {
			return q, &domain.ValidationError{Field: "source", Reason: "unknown source"}
		}
		q.Source = v
	}
	return q, nil
}
