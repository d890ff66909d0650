package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bersihkilat/laundry-api/config"
	"github.com/bersihkilat/laundry-api/models"
)

// RevenueSummary handles GET /api/v1/reports/revenue?from=&to= - total
// revenue and order count over picked-up orders in the date range.
// Read-only projection over the core's committed data.
func RevenueSummary(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var orders []models.Order
	err := db.Where("status = ? AND updated_at >= ? AND updated_at < ?", models.StatusTaken, from, to).
		Find(&orders).Error
	if err != nil {
		respondError(c, err)
		return
	}

	revenue := decimal.Zero
	pointsIssued := 0
	for _, order := range orders {
		revenue = revenue.Add(order.FinalPrice)
		pointsIssued += order.PointsEarned
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"from":          from.Format("2006-01-02"),
			"to":            to.AddDate(0, 0, -1).Format("2006-01-02"),
			"order_count":   len(orders),
			"revenue":       revenue,
			"points_issued": pointsIssued,
		},
	})
}

// OrderStatusCounts handles GET /api/v1/reports/order-status - how many
// orders sit in each workflow state
func OrderStatusCounts(c *gin.Context) {
	type statusCount struct {
		Status models.OrderStatus `json:"status"`
		Count  int64              `json:"count"`
	}

	var counts []statusCount
	err := config.GetDB().Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Order("status").
		Scan(&counts).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    counts,
	})
}

// StockMovementJournal handles GET /api/v1/reports/stock-movements?from=&to= -
// the full append-only movement ledger for the date range, oldest first
func StockMovementJournal(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	var movements []models.MaterialStockMovement
	err := config.GetDB().
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at asc, id asc").
		Find(&movements).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    movements,
	})
}

// parseDateRange reads ?from= and ?to= (YYYY-MM-DD, inclusive) with a
// default of the last 30 days. Returns [from, to+1d) bounds.
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondBindError(c, err)
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondBindError(c, err)
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}

	return from, to.AddDate(0, 0, 1).Truncate(24 * time.Hour), true
}
