package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/ledgerbook/backend/internal/application/ledger"
)

// StatsHandler exposes the business-wide aggregate view
type StatsHandler struct {
	BaseHandler
	statsService *ledgerapp.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *ledgerapp.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats returns selling, received and outstanding totals across the
// whole ledger plus the active party payment count
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetLedgerStats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// RegisterRoutes registers stats routes
func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.GetStats)
}
