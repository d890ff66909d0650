package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bersihkilat/laundry-api/config"
	"github.com/bersihkilat/laundry-api/models"
	"github.com/bersihkilat/laundry-api/services"
)

// CreateExpenseRequest represents the request body for recording an expense
type CreateExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	SpentAt     *time.Time      `json:"spent_at"`
}

// ListExpenses handles GET /api/v1/expenses, optionally filtered by ?category=
func ListExpenses(c *gin.Context) {
	query := config.GetDB().Order("spent_at desc, id desc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    expenses,
	})
}

// CreateExpense handles POST /api/v1/expenses
func CreateExpense(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !req.Amount.IsPositive() {
		respondError(c, &services.ValidationError{Field: "amount", Message: "amount must be positive"})
		return
	}

	spentAt := time.Now()
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	expense := models.Expense{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		SpentAt:     spentAt,
		CreatedByID: actorID,
	}
	if err := config.GetDB().Create(&expense).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    expense,
	})
}

// DeleteExpense handles DELETE /api/v1/expenses/:id (soft delete)
func DeleteExpense(c *gin.Context) {
	expenseID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.GetDB().Delete(&models.Expense{}, expenseID)
	if result.Error != nil {
		respondError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, &services.NotFoundError{Resource: "expense", ID: expenseID})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Expense deleted",
	})
}
